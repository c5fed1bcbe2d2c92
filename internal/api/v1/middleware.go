package v1

import (
	"log/slog"
	"net/http"
	"time"
)

// RequestRecorder receives one observation per served request.
// *metrics.Collector implements it.
type RequestRecorder interface {
	RecordHTTP(method, route string, status int, elapsed time.Duration)
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// LogRequests logs every request and, when rec is non-nil, records it.
// Requests are labeled by the matched route pattern so path values such as
// movie ids do not inflate metric cardinality.
func LogRequests(next http.Handler, log *slog.Logger, rec RequestRecorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		elapsed := time.Since(start)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		if rec != nil {
			rec.RecordHTTP(r.Method, route, wrapped.status, elapsed)
		}
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}
