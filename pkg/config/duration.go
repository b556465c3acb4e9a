package config

import (
	"fmt"
	"time"
)

// ValidatePositiveDuration validates that a duration is positive (greater
// than zero). Timeouts, intervals, and cache TTLs all require this.
//
// Example:
//
//	if err := ValidatePositiveDuration(ttl); err != nil {
//	    return fmt.Errorf("invalid cache TTL: %w", err)
//	}
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}

// ValidateDurationRange validates that a duration is within a specified
// range, inclusive on both ends.
//
// Example:
//
//	// Sweep interval between 1 minute and 1 hour
//	if err := ValidateDurationRange(interval, 1*time.Minute, 1*time.Hour); err != nil {
//	    return fmt.Errorf("invalid sweep interval: %w", err)
//	}
func ValidateDurationRange(d, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}

	if d < min {
		return fmt.Errorf("duration %v is below minimum %v", d, min)
	}

	if d > max {
		return fmt.Errorf("duration %v exceeds maximum %v", d, max)
	}

	return nil
}

// ValidateNonNegativeDuration validates that a duration is non-negative.
// Useful for optional delays where zero disables the behavior.
func ValidateNonNegativeDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("duration must be non-negative, got %v", d)
	}
	return nil
}
