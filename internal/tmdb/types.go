// Package tmdb provides a client for The Movie Database API.
package tmdb

import "encoding/json"

// MovieSummary is one entry of a TMDB movie list, passed through unchanged.
type MovieSummary = json.RawMessage

// Genre is one entry of the TMDB genre list, passed through unchanged.
type Genre = json.RawMessage

// MovieDetails is the full TMDB movie record, passed through unchanged.
type MovieDetails = json.RawMessage

// pagedResponse is the envelope shared by list endpoints.
type pagedResponse struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

const (
	imageBaseURL     = "https://image.tmdb.org/t/p/"
	placeholderImage = "https://placehold.co/200x300?text=No+Image"
)

// ImageURL returns the full image URL for a poster or backdrop path.
// Size can be: w92, w154, w185, w342, w500, w780, original
func ImageURL(path, size string) string {
	if path == "" {
		return placeholderImage
	}
	if size == "" {
		size = "w342"
	}
	return imageBaseURL + size + path
}
