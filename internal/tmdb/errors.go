package tmdb

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a movie doesn't exist in TMDB.
	ErrNotFound = errors.New("movie not found")

	// ErrAPIKeyNotSet indicates no TMDB API key was configured.
	ErrAPIKeyNotSet = errors.New("TMDB API key not set")
)

// UpstreamError is returned when a TMDB call fails for any reason other
// than the resource not existing.
type UpstreamError struct {
	Op         string // e.g. "movie/popular"
	StatusCode int    // zero when no response was received
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tmdb %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("tmdb %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
