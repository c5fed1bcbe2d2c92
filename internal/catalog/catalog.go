// Package catalog serves TMDB movie data through per-resource caches.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/tmdb"
)

// Observer receives cache and upstream events. *metrics.Collector
// implements it.
type Observer interface {
	CacheHit(resource string)
	CacheMiss(resource string)
	CacheEvicted(resource string, reason cache.EvictReason)
	UpstreamCall(resource string, err error, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) CacheHit(string)                           {}
func (nopObserver) CacheMiss(string)                          {}
func (nopObserver) CacheEvicted(string, cache.EvictReason)    {}
func (nopObserver) UpstreamCall(string, error, time.Duration) {}

// Catalog owns one cache per resource and fills them from the upstream on
// a miss. All methods are safe for concurrent use; concurrent misses on
// the same key share a single upstream call.
type Catalog struct {
	source  Source
	failure FailurePolicy
	obs     Observer
	logger  *slog.Logger
	now     func() time.Time
	flight  singleflight.Group

	popular  *cache.Cache[[]tmdb.MovieSummary]
	trending *cache.Cache[[]tmdb.MovieSummary]
	genres   *cache.Cache[[]tmdb.Genre]
	search   *cache.Cache[[]tmdb.MovieSummary]
	discover *cache.Cache[[]tmdb.MovieSummary]
	details  *cache.Cache[tmdb.MovieDetails]

	policies Policies
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithObserver reports cache and upstream events to obs.
func WithObserver(obs Observer) Option {
	return func(c *Catalog) {
		if obs != nil {
			c.obs = obs
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source used for expiry (for testing).
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		c.now = now
	}
}

// WithFailurePolicy sets how upstream failures are surfaced.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(c *Catalog) {
		if p != "" {
			c.failure = p
		}
	}
}

// New creates a catalog reading from source. Resources missing from
// policies use DefaultPolicies.
func New(source Source, policies Policies, opts ...Option) *Catalog {
	c := &Catalog{
		source:   source,
		failure:  FailPropagate,
		obs:      nopObserver{},
		logger:   slog.Default(),
		now:      time.Now,
		policies: policies.withDefaults(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.popular = newResourceCache[[]tmdb.MovieSummary](c, ResourcePopular)
	c.trending = newResourceCache[[]tmdb.MovieSummary](c, ResourceTrending)
	c.genres = newResourceCache[[]tmdb.Genre](c, ResourceGenres)
	c.search = newResourceCache[[]tmdb.MovieSummary](c, ResourceSearch)
	c.discover = newResourceCache[[]tmdb.MovieSummary](c, ResourceDiscover)
	c.details = newResourceCache[tmdb.MovieDetails](c, ResourceDetails)
	return c
}

func newResourceCache[V any](c *Catalog, res Resource) *cache.Cache[V] {
	pol := c.policies[res]
	return cache.New[V](pol.TTL, pol.Capacity,
		cache.WithClock(c.now),
		cache.WithEvictHook(func(_ string, reason cache.EvictReason) {
			c.obs.CacheEvicted(string(res), reason)
		}),
	)
}

// PopularMovies returns the popular movie list.
func (c *Catalog) PopularMovies(ctx context.Context) ([]tmdb.MovieSummary, error) {
	movies, err := load(ctx, c, ResourcePopular, c.popular, popularKey,
		func(ctx context.Context, up Upstream) ([]tmdb.MovieSummary, error) {
			return up.PopularMovies(ctx)
		})
	return c.listResult(ctx, ResourcePopular, movies, err)
}

// TrendingMovies returns the trending movie list.
func (c *Catalog) TrendingMovies(ctx context.Context) ([]tmdb.MovieSummary, error) {
	movies, err := load(ctx, c, ResourceTrending, c.trending, trendingKey,
		func(ctx context.Context, up Upstream) ([]tmdb.MovieSummary, error) {
			return up.TrendingMovies(ctx)
		})
	return c.listResult(ctx, ResourceTrending, movies, err)
}

// Genres returns the movie genre list.
func (c *Catalog) Genres(ctx context.Context) ([]tmdb.Genre, error) {
	genres, err := load(ctx, c, ResourceGenres, c.genres, genresKey,
		func(ctx context.Context, up Upstream) ([]tmdb.Genre, error) {
			return up.Genres(ctx)
		})
	return c.listResult(ctx, ResourceGenres, genres, err)
}

// SearchMovies returns movies matching query. Queries differing only in
// case or surrounding whitespace share one cache entry.
func (c *Catalog) SearchMovies(ctx context.Context, query string) ([]tmdb.MovieSummary, error) {
	key := SearchKey(query)
	movies, err := load(ctx, c, ResourceSearch, c.search, key,
		func(ctx context.Context, up Upstream) ([]tmdb.MovieSummary, error) {
			return up.SearchMovies(ctx, key)
		})
	return c.listResult(ctx, ResourceSearch, movies, err)
}

// DiscoverMovies returns movies in the given genre.
func (c *Catalog) DiscoverMovies(ctx context.Context, genreID string) ([]tmdb.MovieSummary, error) {
	movies, err := load(ctx, c, ResourceDiscover, c.discover, genreID,
		func(ctx context.Context, up Upstream) ([]tmdb.MovieSummary, error) {
			return up.DiscoverMovies(ctx, genreID)
		})
	return c.listResult(ctx, ResourceDiscover, movies, err)
}

// MovieDetails returns the full record for a movie. It returns
// tmdb.ErrNotFound when the upstream reports no such movie; that answer is
// never cached, so every lookup of a missing ID reaches the upstream.
func (c *Catalog) MovieDetails(ctx context.Context, id string) (tmdb.MovieDetails, error) {
	movie, err := load(ctx, c, ResourceDetails, c.details, id,
		func(ctx context.Context, up Upstream) (tmdb.MovieDetails, error) {
			return up.MovieDetails(ctx, id)
		})
	if err != nil && c.degrade(ctx, err) {
		c.logger.Warn("upstream failed, reporting not found", "resource", ResourceDetails, "id", id, "error", err)
		return nil, tmdb.ErrNotFound
	}
	return movie, err
}

// load is the miss path shared by every accessor: a fresh hit is returned
// as is; otherwise fetch runs once, and its result is stored only on
// success.
func load[V any](ctx context.Context, c *Catalog, res Resource, store *cache.Cache[V], key string,
	fetch func(context.Context, Upstream) (V, error)) (V, error) {
	if v, ok := store.Get(key); ok {
		c.obs.CacheHit(string(res))
		return v, nil
	}
	c.obs.CacheMiss(string(res))
	c.logger.Debug("cache miss", "resource", res, "key", key)

	ch := c.flight.DoChan(string(res)+"\x00"+key, func() (any, error) {
		up, err := c.source.Upstream()
		if err != nil {
			c.obs.UpstreamCall(string(res), err, 0)
			return nil, err
		}

		// Detached from the caller's cancellation: waiters on the same
		// key share this call, and its result is cached even if the
		// caller that started it has gone.
		start := time.Now()
		v, err := fetch(context.WithoutCancel(ctx), up)
		c.obs.UpstreamCall(string(res), err, time.Since(start))
		if err != nil {
			return nil, err
		}
		store.Set(key, v)
		return v, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		if r.Shared {
			c.logger.Debug("shared in-flight upstream call", "resource", res, "key", key)
		}
		if r.Err != nil {
			return zero, r.Err
		}
		return r.Val.(V), nil
	}
}

func (c *Catalog) listResult(ctx context.Context, res Resource, items []tmdb.MovieSummary, err error) ([]tmdb.MovieSummary, error) {
	if err == nil {
		return items, nil
	}
	if c.degrade(ctx, err) {
		c.logger.Warn("upstream failed, returning empty list", "resource", res, "error", err)
		return []tmdb.MovieSummary{}, nil
	}
	return nil, err
}

// degrade reports whether err should be swallowed under the configured
// failure policy. A missing API key and a canceled caller are always
// surfaced.
func (c *Catalog) degrade(ctx context.Context, err error) bool {
	return c.failure == FailEmpty &&
		ctx.Err() == nil &&
		!errors.Is(err, tmdb.ErrAPIKeyNotSet) &&
		!errors.Is(err, tmdb.ErrNotFound)
}

// CacheStats describes the state of one resource cache.
type CacheStats struct {
	Resource Resource
	Entries  int
	Capacity int
	TTL      time.Duration
}

// Stats returns a snapshot of every resource cache.
func (c *Catalog) Stats() []CacheStats {
	type sizer interface {
		Len() int
		Capacity() int
		TTL() time.Duration
	}
	caches := map[Resource]sizer{
		ResourcePopular:  c.popular,
		ResourceTrending: c.trending,
		ResourceGenres:   c.genres,
		ResourceSearch:   c.search,
		ResourceDiscover: c.discover,
		ResourceDetails:  c.details,
	}

	stats := make([]CacheStats, 0, len(Resources))
	for _, res := range Resources {
		s := caches[res]
		stats = append(stats, CacheStats{
			Resource: res,
			Entries:  s.Len(),
			Capacity: s.Capacity(),
			TTL:      s.TTL(),
		})
	}
	return stats
}
