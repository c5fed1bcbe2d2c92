// Package v1 implements the native REST API.
package v1

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vmunix/marquee/internal/tmdb"
)

// Server is the v1 API server.
type Server struct {
	deps   ServerDeps
	logger *slog.Logger
}

// New creates a new v1 API server. It fails when a required dependency is missing.
func New(deps ServerDeps, logger *slog.Logger) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{deps: deps, logger: logger}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Movies
	mux.HandleFunc("GET /api/v1/movies/popular", s.popularMovies)
	mux.HandleFunc("GET /api/v1/movies/trending", s.trendingMovies)
	mux.HandleFunc("GET /api/v1/movies/search", s.searchMovies)
	mux.HandleFunc("GET /api/v1/movies/discover", s.discoverMovies)
	mux.HandleFunc("GET /api/v1/movies/{id}", s.movieDetails)

	// Genres
	mux.HandleFunc("GET /api/v1/genres", s.listGenres)

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
	mux.HandleFunc("GET /api/health", s.health)
	if s.deps.Metrics != nil {
		mux.Handle("GET /metrics", s.deps.Metrics)
	}
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeCatalogError maps catalog failures onto HTTP statuses.
func (s *Server) writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	var upstreamErr *tmdb.UpstreamError
	switch {
	case errors.Is(err, tmdb.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, tmdb.ErrAPIKeyNotSet):
		s.logger.Error("tmdb not configured", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "CONFIG_ERROR", err.Error())
	case errors.As(err, &upstreamErr):
		s.logger.Warn("upstream request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// writeList writes a list payload, encoding nil as an empty array.
func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) popularMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.deps.Catalog.PopularMovies(r.Context())
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}
	writeList(w, movies)
}

func (s *Server) trendingMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.deps.Catalog.TrendingMovies(r.Context())
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}
	writeList(w, movies)
}

func (s *Server) searchMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "MISSING_QUERY", "query parameter is required")
		return
	}

	movies, err := s.deps.Catalog.SearchMovies(r.Context(), query)
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}
	writeList(w, movies)
}

func (s *Server) discoverMovies(w http.ResponseWriter, r *http.Request) {
	genre := r.URL.Query().Get("genre")
	if genre == "" {
		writeError(w, http.StatusBadRequest, "MISSING_GENRE", "genre parameter is required")
		return
	}

	movies, err := s.deps.Catalog.DiscoverMovies(r.Context(), genre)
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}
	writeList(w, movies)
}

func (s *Server) movieDetails(w http.ResponseWriter, r *http.Request) {
	details, err := s.deps.Catalog.MovieDetails(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *Server) listGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.deps.Catalog.Genres(r.Context())
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}
	writeList(w, genres)
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	stats := s.deps.Catalog.Stats()
	resp := statusResponse{
		Status:  "ok",
		Version: s.deps.Version,
		Caches:  make([]cacheStatsResponse, 0, len(stats)),
	}
	for _, st := range stats {
		resp.Caches = append(resp.Caches, cacheStatsResponse{
			Resource:   string(st.Resource),
			Entries:    st.Entries,
			Capacity:   st.Capacity,
			TTLSeconds: st.TTL.Seconds(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
