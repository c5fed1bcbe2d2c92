package catalog

import (
	"context"

	"github.com/vmunix/marquee/internal/tmdb"
)

//go:generate mockgen -source=source.go -destination=mocks/mock_upstream.go -package=mocks

// Upstream is the movie metadata API the catalog caches in front of.
// *tmdb.Client implements it.
type Upstream interface {
	PopularMovies(ctx context.Context) ([]tmdb.MovieSummary, error)
	TrendingMovies(ctx context.Context) ([]tmdb.MovieSummary, error)
	Genres(ctx context.Context) ([]tmdb.Genre, error)
	SearchMovies(ctx context.Context, query string) ([]tmdb.MovieSummary, error)
	DiscoverMovies(ctx context.Context, genreID string) ([]tmdb.MovieSummary, error)
	MovieDetails(ctx context.Context, id string) (tmdb.MovieDetails, error)
}

// Source hands out the Upstream on a cache miss. It is consulted only when
// an upstream call is needed, so a lazily configured client fails on first
// use rather than at startup.
type Source interface {
	Upstream() (Upstream, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (Upstream, error)

// Upstream calls f.
func (f SourceFunc) Upstream() (Upstream, error) {
	return f()
}

// StaticSource returns a Source that always yields u.
func StaticSource(u Upstream) Source {
	return SourceFunc(func() (Upstream, error) { return u, nil })
}

// ProviderSource adapts a lazy TMDB client provider to Source.
func ProviderSource(p *tmdb.Provider) Source {
	return SourceFunc(func() (Upstream, error) {
		c, err := p.Client()
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}
