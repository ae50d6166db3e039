package middleware

import (
	"net/http"
	"slices"
	"strings"
)

var (
	corsMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}, ", ")
	corsHeaders = strings.Join([]string{"Content-Type", RequestIDHeader}, ", ")
)

// CORSMiddleware lets browser clients on the allowed origins call the API.
// A "*" entry admits every origin. OPTIONS requests are answered with 204 here.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	wildcard := slices.Contains(allowedOrigins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if origin := r.Header.Get("Origin"); origin != "" {
				switch {
				case wildcard:
					h.Set("Access-Control-Allow-Origin", "*")
				case originAllowed(origin, allowedOrigins):
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			h.Set("Access-Control-Expose-Headers", RequestIDHeader)
			h.Set("Access-Control-Max-Age", "3600")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed []string) bool {
	return slices.ContainsFunc(allowed, func(a string) bool {
		return strings.EqualFold(origin, a)
	})
}
