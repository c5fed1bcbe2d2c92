package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/vmunix/marquee/internal/catalog"
	"github.com/vmunix/marquee/internal/tmdb"
)

//go:generate mockgen -source=deps.go -destination=mocks/mock_deps.go -package=mocks

// MovieCatalog serves cached movie data. *catalog.Catalog implements it.
type MovieCatalog interface {
	PopularMovies(ctx context.Context) ([]tmdb.MovieSummary, error)
	TrendingMovies(ctx context.Context) ([]tmdb.MovieSummary, error)
	Genres(ctx context.Context) ([]tmdb.Genre, error)
	SearchMovies(ctx context.Context, query string) ([]tmdb.MovieSummary, error)
	DiscoverMovies(ctx context.Context, genreID string) ([]tmdb.MovieSummary, error)
	MovieDetails(ctx context.Context, id string) (tmdb.MovieDetails, error)
	Stats() []catalog.CacheStats
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Catalog MovieCatalog

	// Optional dependencies
	Metrics http.Handler // Served at /metrics when set
	Version string
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Catalog == nil {
		return errors.New("catalog is required")
	}
	return nil
}
