package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the marquee server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new marquee API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiErr ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server error %d: %s (%s)", resp.StatusCode, apiErr.Error, apiErr.Code)
		}
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) movies(path string) ([]Movie, error) {
	var movies []Movie
	if err := c.get(path, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Popular returns the popular movie list.
func (c *Client) Popular() ([]Movie, error) {
	return c.movies("/api/v1/movies/popular")
}

// Trending returns this week's trending movies.
func (c *Client) Trending() ([]Movie, error) {
	return c.movies("/api/v1/movies/trending")
}

// Search returns movies matching query.
func (c *Client) Search(query string) ([]Movie, error) {
	return c.movies("/api/v1/movies/search?query=" + url.QueryEscape(query))
}

// Discover returns movies in the genre with the given id.
func (c *Client) Discover(genreID string) ([]Movie, error) {
	return c.movies("/api/v1/movies/discover?genre=" + url.QueryEscape(genreID))
}

// Movie returns the full record for one movie.
func (c *Client) Movie(id string) (*MovieDetails, error) {
	var details MovieDetails
	if err := c.get("/api/v1/movies/"+url.PathEscape(id), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Genres returns the movie genre list.
func (c *Client) Genres() ([]Genre, error) {
	var genres []Genre
	if err := c.get("/api/v1/genres", &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// Status returns the server version and cache statistics.
func (c *Client) Status() (*StatusResponse, error) {
	var status StatusResponse
	if err := c.get("/api/v1/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// API response types. The server passes TMDB payloads through unchanged;
// these decode the fields the CLI displays.

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MovieDetails struct {
	Movie
	Tagline  string  `json:"tagline"`
	Runtime  int     `json:"runtime"`
	Genres   []Genre `json:"genres"`
	Homepage string  `json:"homepage"`
	IMDBID   string  `json:"imdb_id"`
}

type CacheStatus struct {
	Resource   string  `json:"resource"`
	Entries    int     `json:"entries"`
	Capacity   int     `json:"capacity"`
	TTLSeconds float64 `json:"ttl_seconds"`
}

type StatusResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Caches  []CacheStatus `json:"caches"`
}
