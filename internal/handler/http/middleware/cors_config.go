package middleware

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// LoadCORSConfig loads CORS configuration from environment variables.
//
// Environment Variables:
//   - CORS_ALLOWED_ORIGINS: comma-separated list of allowed origins, or "*".
//     Defaults to "*" (public API).
//   - CORS_ALLOWED_METHODS: comma-separated list of allowed HTTP methods (optional)
//   - CORS_ALLOWED_HEADERS: comma-separated list of allowed request headers (optional)
//   - CORS_MAX_AGE: preflight cache duration in seconds (optional, default 86400)
//
// Explicit origins enable credential support for the token-protected admin
// routes; the wildcard default serves anonymous browser clients.
//
// Note: caller should inject Logger after loading.
func LoadCORSConfig() (*CORSConfig, error) {
	origins, err := loadOrigins()
	if err != nil {
		return nil, fmt.Errorf("failed to load allowed origins: %w", err)
	}

	methods, err := loadMethods()
	if err != nil {
		return nil, fmt.Errorf("failed to load allowed methods: %w", err)
	}

	headers := loadHeaders()

	maxAge, err := loadMaxAge()
	if err != nil {
		return nil, fmt.Errorf("failed to load max age: %w", err)
	}

	config := &CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: methods,
		AllowedHeaders: headers,
		// Credentials only work with explicit origins
		AllowCredentials: !(len(origins) == 1 && origins[0] == "*"),
		MaxAge:           maxAge,
	}

	return config, nil
}

// loadOrigins reads CORS_ALLOWED_ORIGINS. Unset or "*" means any origin.
// Explicit origins must be http(s) URLs without path, query, fragment or
// trailing slash.
func loadOrigins() ([]string, error) {
	originsStr := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if originsStr == "" || originsStr == "*" {
		return []string{"*"}, nil
	}

	originList := strings.Split(originsStr, ",")
	origins := make([]string, 0, len(originList))

	for _, originStr := range originList {
		originStr = strings.TrimSpace(originStr)
		if originStr == "" {
			continue
		}

		u, err := url.Parse(originStr)
		if err != nil {
			return nil, fmt.Errorf("invalid origin URL '%s': %w", originStr, err)
		}

		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("origin must use http or https scheme: %s", originStr)
		}

		if u.Path != "" && u.Path != "/" {
			return nil, fmt.Errorf("origin must not include path: %s", originStr)
		}
		if u.RawQuery != "" {
			return nil, fmt.Errorf("origin must not include query string: %s", originStr)
		}
		if u.Fragment != "" {
			return nil, fmt.Errorf("origin must not include fragment: %s", originStr)
		}

		if strings.HasSuffix(originStr, "/") {
			return nil, fmt.Errorf("origin must not have trailing slash: %s", originStr)
		}

		origins = append(origins, originStr)
	}

	if len(origins) == 0 {
		return nil, fmt.Errorf("at least one valid origin must be configured in CORS_ALLOWED_ORIGINS")
	}

	return origins, nil
}

// loadMethods reads CORS_ALLOWED_METHODS. The API only mutates through POST
// and DELETE, so those plus the read verbs are the default.
func loadMethods() ([]string, error) {
	methodsStr := strings.TrimSpace(os.Getenv("CORS_ALLOWED_METHODS"))
	if methodsStr == "" {
		return []string{"GET", "POST", "DELETE", "OPTIONS"}, nil
	}

	methodList := strings.Split(methodsStr, ",")
	methods := make([]string, 0, len(methodList))

	validMethods := map[string]bool{
		"GET":     true,
		"HEAD":    true,
		"POST":    true,
		"PUT":     true,
		"DELETE":  true,
		"PATCH":   true,
		"OPTIONS": true,
	}

	for _, method := range methodList {
		method = strings.ToUpper(strings.TrimSpace(method))
		if method == "" {
			continue
		}

		if !validMethods[method] {
			return nil, fmt.Errorf("invalid HTTP method '%s'", method)
		}

		methods = append(methods, method)
	}

	if len(methods) == 0 {
		return nil, fmt.Errorf("at least one valid HTTP method must be configured in CORS_ALLOWED_METHODS")
	}

	return methods, nil
}

// loadHeaders reads CORS_ALLOWED_HEADERS. Last-Event-ID is allowed by
// default so browser EventSource clients can resume sync progress streams.
func loadHeaders() []string {
	headersStr := strings.TrimSpace(os.Getenv("CORS_ALLOWED_HEADERS"))
	if headersStr == "" {
		return []string{"Content-Type", "Authorization", "X-Request-ID", "Last-Event-ID"}
	}

	headerList := strings.Split(headersStr, ",")
	headers := make([]string, 0, len(headerList))

	for _, header := range headerList {
		header = strings.TrimSpace(header)
		if header == "" {
			continue
		}
		headers = append(headers, header)
	}

	if len(headers) == 0 {
		return []string{"Content-Type", "Authorization", "X-Request-ID", "Last-Event-ID"}
	}

	return headers
}

// loadMaxAge reads CORS_MAX_AGE (seconds, default 24 hours).
func loadMaxAge() (int, error) {
	maxAgeStr := strings.TrimSpace(os.Getenv("CORS_MAX_AGE"))
	if maxAgeStr == "" {
		return 86400, nil
	}

	maxAge, err := strconv.Atoi(maxAgeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid CORS_MAX_AGE '%s': must be a valid integer", maxAgeStr)
	}

	if maxAge < 0 {
		return 0, fmt.Errorf("CORS_MAX_AGE must be non-negative, got: %d", maxAge)
	}

	return maxAge, nil
}
