package middleware

import (
	"net/http"
)

// DefaultMaxRequestSize admits lessons carrying embedded file data
const DefaultMaxRequestSize = 50 * 1024 * 1024 // 50MB

// RequestSizeLimitMiddleware caps request bodies at limit bytes, DefaultMaxRequestSize when limit <= 0.
//
// A declared Content-Length over the limit is refused up front. Bodies of unknown length are
// wrapped in http.MaxBytesReader and fail while being decoded.
func RequestSizeLimitMiddleware(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
