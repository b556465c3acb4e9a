package config

import (
	"log/slog"
)

// Rate limit defaults. 10 requests per second with a burst of 20 keeps a
// polling dashboard comfortable while stopping list scrapers from hammering
// the search endpoints.
const (
	DefaultRateLimitRPS   = 10.0
	DefaultRateLimitBurst = 20
)

// RateLimitConfig holds the per-client HTTP rate limit settings. Each client
// IP gets a token bucket refilled at RPS with capacity Burst.
type RateLimitConfig struct {
	// Enabled turns the limiter middleware on or off.
	Enabled bool

	// RPS is the sustained request rate allowed per client.
	RPS float64

	// Burst is the bucket capacity, the number of requests a client may
	// send back to back before the sustained rate applies.
	Burst int
}

// LoadRateLimitConfig loads rate limiting configuration from environment
// variables. Invalid values log a warning and fall back to the defaults;
// loading never fails.
//
// Environment variables:
//   - RATE_LIMIT_ENABLED: Enable/disable rate limiting (default: true)
//   - RATE_LIMIT_RPS: Sustained requests per second per client (default: 10)
//   - RATE_LIMIT_BURST: Bucket capacity per client (default: 20)
//
// Example:
//
//	cfg := config.LoadRateLimitConfig()
//	if cfg.Enabled {
//	    limiter := httpapi.NewRateLimiter(cfg.RPS, cfg.Burst)
//	    handler = limiter.Limit(handler)
//	}
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: GetEnvBool("RATE_LIMIT_ENABLED", true),
		RPS:     GetEnvFloat64("RATE_LIMIT_RPS", DefaultRateLimitRPS),
		Burst:   GetEnvInt("RATE_LIMIT_BURST", DefaultRateLimitBurst),
	}

	if cfg.RPS <= 0 {
		slog.Warn("invalid RATE_LIMIT_RPS, using default",
			slog.Float64("value", cfg.RPS),
			slog.Float64("default", DefaultRateLimitRPS))
		cfg.RPS = DefaultRateLimitRPS
	}

	if cfg.Burst < 1 {
		slog.Warn("invalid RATE_LIMIT_BURST, using default",
			slog.Int("value", cfg.Burst),
			slog.Int("default", DefaultRateLimitBurst))
		cfg.Burst = DefaultRateLimitBurst
	}

	return cfg
}
