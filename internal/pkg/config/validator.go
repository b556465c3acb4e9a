package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ValidateCronSchedule validates a cron expression using the robfig/cron/v3
// parser, the same parser the worker scheduler runs on.
//
// The expression must follow the standard five-field format:
//   - "minute hour day month weekday"
//   - Example: "0 4 * * *" (every day at 4:00)
//   - Example: "*/30 * * * *" (every 30 minutes)
//
// Error messages name the failing schedule so operators can fix the value.
//
// Validation tool: https://crontab.guru/
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}

	return nil
}

// ValidateTimezone validates a timezone string by attempting to load it with
// time.LoadLocation.
//
// The timezone must be a valid IANA name:
//   - Example: "UTC"
//   - Example: "Europe/Berlin"
//
// Loading depends on timezone data being present on the system; a minimal
// container image without tzdata fails this validation even for correct
// names.
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return fmt.Errorf("invalid timezone: cannot be empty")
	}

	_, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}

	return nil
}

// ValidateDuration validates that a duration is within a specified range,
// inclusive on both ends. Error messages include the actual value and the
// valid range.
//
// Example:
//
//	// Sync timeout between 1m and 4h
//	err := ValidateDuration(45*time.Minute, 1*time.Minute, 4*time.Hour)
func ValidateDuration(duration, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}

	if duration < min {
		return fmt.Errorf("duration %v is below minimum %v", duration, min)
	}

	if duration > max {
		return fmt.Errorf("duration %v exceeds maximum %v", duration, max)
	}

	return nil
}

// ValidateIntRange validates that an integer value is within a specified
// range, inclusive on both ends.
//
// Example:
//
//	// Import worker count between 1 and 32
//	err := ValidateIntRange(workers, 1, 32)
func ValidateIntRange(value, min, max int) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%d) cannot be greater than max (%d)", min, max)
	}

	if value < min {
		return fmt.Errorf("value %d is below minimum %d", value, min)
	}

	if value > max {
		return fmt.Errorf("value %d exceeds maximum %d", value, max)
	}

	return nil
}

// ValidatePositiveDuration validates that a duration is strictly positive.
// Zero usually means "disabled" elsewhere in the configuration, so this
// validator rejects it.
func ValidatePositiveDuration(duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", duration)
	}

	return nil
}
