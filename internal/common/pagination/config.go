// Package pagination provides the limit/offset window handling shared by
// all list endpoints: defaults, upper bounds, and clamping of out-of-range
// request values.
package pagination

import (
	"os"
	"strconv"
)

// Config holds pagination configuration settings.
// These values can be loaded from environment variables or config files.
type Config struct {
	DefaultLimit int // Items per page when the request names none
	MaxLimit     int // Hard ceiling for requested limits
}

// DefaultConfig returns the default pagination configuration.
// Default values: limit=100, max=10000.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 100,
		MaxLimit:     10000,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_DEFAULT_LIMIT: Default items per page
//   - PAGINATION_MAX_LIMIT: Maximum items per page
//
// Falls back to DefaultConfig() if environment variables are not set.
func LoadFromEnv() Config {
	return Config{
		DefaultLimit: getEnvAsInt("PAGINATION_DEFAULT_LIMIT", 100),
		MaxLimit:     getEnvAsInt("PAGINATION_MAX_LIMIT", 10000),
	}
}

// getEnvAsInt retrieves an environment variable and parses it as an integer.
// Returns the default value if the variable is not set or cannot be parsed.
func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 1 {
		return defaultValue
	}
	return val
}
