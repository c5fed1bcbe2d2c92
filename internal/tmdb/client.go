package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://api.themoviedb.org"

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PopularMovies fetches the current popular movie list.
func (c *Client) PopularMovies(ctx context.Context) ([]MovieSummary, error) {
	return c.list(ctx, "movie/popular", nil)
}

// TrendingMovies fetches this week's trending movies.
func (c *Client) TrendingMovies(ctx context.Context) ([]MovieSummary, error) {
	return c.list(ctx, "trending/movie/week", nil)
}

// Genres fetches the movie genre list.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var resp genreListResponse
	if err := c.get(ctx, "genre/movie/list", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Genres == nil {
		resp.Genres = []Genre{}
	}
	return resp.Genres, nil
}

// SearchMovies searches movies by title.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]MovieSummary, error) {
	return c.list(ctx, "search/movie", url.Values{"query": {query}})
}

// DiscoverMovies lists movies tagged with the given genre ID.
func (c *Client) DiscoverMovies(ctx context.Context, genreID string) ([]MovieSummary, error) {
	return c.list(ctx, "discover/movie", url.Values{"with_genres": {genreID}})
}

// MovieDetails fetches a single movie by TMDB ID. Returns ErrNotFound if
// TMDB has no such movie.
func (c *Client) MovieDetails(ctx context.Context, id string) (MovieDetails, error) {
	var raw json.RawMessage
	err := c.get(ctx, "movie/"+url.PathEscape(id), nil, &raw)
	var upErr *UpstreamError
	if errors.As(err, &upErr) && upErr.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) list(ctx context.Context, op string, params url.Values) ([]MovieSummary, error) {
	var resp pagedResponse
	if err := c.get(ctx, op, params, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []MovieSummary{}
	}
	return resp.Results, nil
}

// get performs GET /3/{op} and decodes the JSON body into out.
// Every failure is reported as an *UpstreamError.
func (c *Client) get(ctx context.Context, op string, params url.Values, out any) error {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s/3/%s?%s", c.baseURL, op, q.Encode())

	// Build request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &UpstreamError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	// Execute
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Op: op, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	// Handle errors
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	// Decode
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
