package pagination

import (
	"net/http"
	"strconv"
)

// Window is a normalized limit/offset pair. Values produced by Clamp or
// ParseQueryParams are always safe to hand to the storage layer.
type Window struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Clamp normalizes a requested limit/offset against the configuration.
// Out-of-range values clamp rather than fail: a missing or non-positive
// limit becomes the default, an oversized limit becomes the maximum, and
// a negative offset becomes zero.
func Clamp(limit, offset int, config Config) Window {
	if limit <= 0 {
		limit = config.DefaultLimit
	}
	if limit > config.MaxLimit {
		limit = config.MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Window{Limit: limit, Offset: offset}
}

// ParseQueryParams reads the limit and offset query parameters from an
// HTTP request and clamps them. Unparseable values count as absent, so a
// request never fails on pagination input alone.
//
// Query parameters:
//   - limit: items per page (default config.DefaultLimit, capped at config.MaxLimit)
//   - offset: rows to skip (default 0)
func ParseQueryParams(r *http.Request, config Config) Window {
	limit := queryInt(r, "limit")
	offset := queryInt(r, "offset")
	return Clamp(limit, offset, config)
}

// queryInt parses a single integer query parameter, returning 0 when the
// parameter is absent or malformed.
func queryInt(r *http.Request, key string) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
