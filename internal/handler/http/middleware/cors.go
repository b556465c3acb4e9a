// Package middleware provides cross-cutting HTTP middleware for the catalog API.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins, or ["*"] to allow
	// any origin. The catalog API is public and read-only for browsers, so
	// the wildcard is the default.
	AllowedOrigins []string

	// AllowedMethods specifies which HTTP methods are allowed in CORS requests.
	// Configurable via CORS_ALLOWED_METHODS environment variable.
	AllowedMethods []string

	// AllowedHeaders specifies which request headers are allowed in CORS requests.
	// Configurable via CORS_ALLOWED_HEADERS environment variable.
	AllowedHeaders []string

	// AllowCredentials indicates whether credentials (cookies, authorization
	// headers) are supported. Only meaningful in whitelist mode; browsers
	// reject credentials combined with a wildcard origin.
	AllowCredentials bool

	// MaxAge specifies how long preflight results can be cached (in seconds).
	// Configurable via CORS_MAX_AGE environment variable.
	MaxAge int

	// Logger receives warnings about rejected origins. May be nil.
	Logger *slog.Logger
}

// allowAll reports whether the config permits any origin.
func (c CORSConfig) allowAll() bool {
	return len(c.AllowedOrigins) == 1 && c.AllowedOrigins[0] == "*"
}

// isAllowed checks the origin against the whitelist. Comparison is
// case-insensitive and ignores trailing slashes.
func (c CORSConfig) isAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	for _, allowed := range c.AllowedOrigins {
		if origin == normalizeOrigin(allowed) {
			return true
		}
	}
	return false
}

func normalizeOrigin(origin string) string {
	origin = strings.ToLower(strings.TrimSpace(origin))
	return strings.TrimSuffix(origin, "/")
}

// CORS returns an HTTP middleware that handles cross-origin requests.
//
// Behavior:
//   - If the Origin header is empty, skip CORS processing (same-origin request)
//   - In wildcard mode, answer every origin with Access-Control-Allow-Origin: *
//   - In whitelist mode, echo back allowed origins and support credentials;
//     disallowed origins are logged and get no CORS headers, so the browser
//     blocks the response
//   - Preflight OPTIONS requests are answered with 204 No Content and the
//     configured methods, headers and max age
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			switch {
			case config.allowAll():
				w.Header().Set("Access-Control-Allow-Origin", "*")

			case config.isAllowed(origin):
				// Echo back the request origin (required for credentials)
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				if config.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}

			default:
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("remote_addr", r.RemoteAddr),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			// Handle preflight OPTIONS request
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))

				// Return 204 No Content for preflight (do not call next handler)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
