package http

import (
	"net/http"
	"sort"
	"strings"

	"kuckmal/pkg/security/csp"
)

// SecurityHeadersConfig selects the CSP policy per path prefix. The
// default policy applies to everything that matches no prefix.
type SecurityHeadersConfig struct {
	DefaultPolicy *csp.Builder
	PathPolicies  map[string]*csp.Builder
}

// DefaultSecurityHeadersConfig locks the JSON API down with the strict
// policy and carves out the Swagger UI, which needs inline scripts.
func DefaultSecurityHeadersConfig() SecurityHeadersConfig {
	return SecurityHeadersConfig{
		DefaultPolicy: csp.StrictPolicy(),
		PathPolicies: map[string]*csp.Builder{
			"/swagger/": csp.SwaggerUIPolicy(),
		},
	}
}

// compiledPolicy is a policy serialized once at middleware construction.
// Builders are not concurrency-safe, strings are.
type compiledPolicy struct {
	prefix string
	header string
	value  string
}

// SecurityHeaders returns middleware that sets the Content-Security-Policy
// and companion security headers on every response. Policies are chosen
// by longest matching path prefix.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	var byPrefix []compiledPolicy
	for prefix, policy := range cfg.PathPolicies {
		byPrefix = append(byPrefix, compiledPolicy{
			prefix: prefix,
			header: policy.HeaderName(),
			value:  policy.Build(),
		})
	}
	// Longest prefix first, so "/swagger/ui/" would win over "/swagger/".
	sort.Slice(byPrefix, func(i, j int) bool {
		return len(byPrefix[i].prefix) > len(byPrefix[j].prefix)
	})

	fallback := compiledPolicy{header: "Content-Security-Policy"}
	if cfg.DefaultPolicy != nil {
		fallback.header = cfg.DefaultPolicy.HeaderName()
		fallback.value = cfg.DefaultPolicy.Build()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			chosen := fallback
			for _, p := range byPrefix {
				if strings.HasPrefix(r.URL.Path, p.prefix) {
					chosen = p
					break
				}
			}
			if chosen.value != "" {
				w.Header().Set(chosen.header, chosen.value)
			}
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer")
			next.ServeHTTP(w, r)
		})
	}
}
