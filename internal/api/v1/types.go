// internal/api/v1/types.go
package v1

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// cacheStatsResponse is the API representation of one resource cache.
type cacheStatsResponse struct {
	Resource   string  `json:"resource"`
	Entries    int     `json:"entries"`
	Capacity   int     `json:"capacity"`
	TTLSeconds float64 `json:"ttl_seconds"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status  string               `json:"status"`
	Version string               `json:"version"`
	Caches  []cacheStatsResponse `json:"caches"`
}

// healthResponse is the response for GET /api/health.
type healthResponse struct {
	Status string `json:"status"`
}
