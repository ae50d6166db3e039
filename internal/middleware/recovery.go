package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RecoveryMiddleware turns a handler panic into a 500 JSON error.
// Nothing is written when the handler had already started its response.
func RecoveryMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}

			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if p == http.ErrAbortHandler {
					panic(p)
				}

				logger.Error("panic recovered",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", p),
					zap.Stack("stack"),
				)

				if rec.written() {
					return
				}
				writeJSONError(rec, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
