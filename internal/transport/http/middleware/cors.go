package middleware

import (
	"log"
	"net/http"

	"github.com/connectk/backend/internal/config"
)

// EnableCORS wraps a handler with origin checks against the configured
// allow-list and answers preflight requests.
func EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// no origin header (curl or same-origin): allow the request
		if origin == "" {
			setCORSHeaders(w)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		allowed := false
		for _, allowedOrigin := range config.AppConfig.AllowedOrigins {
			if allowedOrigin == origin {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				allowed = true
				break
			}
		}

		if !allowed {
			log.Printf("[CORS] Origin '%s' not in allowed list: %v", origin, config.AppConfig.AllowedOrigins)
			http.Error(w, "Origin not allowed", http.StatusForbidden)
			return
		}

		setCORSHeaders(w)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Allow-Credentials", "true")
}
