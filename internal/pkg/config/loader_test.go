package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Test Group 1: LoadEnvString
// ============================================================================

func TestLoadEnvString_WithValue(t *testing.T) {
	t.Setenv("TEST_STRING", "custom_value")

	result := LoadEnvString("TEST_STRING", "default_value")

	assert.Equal(t, "custom_value", result)
}

func TestLoadEnvString_WithoutValue(t *testing.T) {
	result := LoadEnvString("TEST_STRING", "default_value")

	assert.Equal(t, "default_value", result)
}

func TestLoadEnvString_EmptyString(t *testing.T) {
	t.Setenv("TEST_STRING", "")

	result := LoadEnvString("TEST_STRING", "default_value")

	// Empty string should use default
	assert.Equal(t, "default_value", result)
}

// ============================================================================
// Test Group 2: LoadEnvWithFallback
// ============================================================================

func TestLoadEnvWithFallback_WithValidValue(t *testing.T) {
	t.Setenv("TEST_CRON", "0 6 * * *")

	result := LoadEnvWithFallback("TEST_CRON", "0 4 * * *", ValidateCronSchedule)

	assert.Equal(t, "0 6 * * *", result.Value)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvWithFallback_WithoutValue(t *testing.T) {
	result := LoadEnvWithFallback("TEST_CRON", "0 4 * * *", ValidateCronSchedule)

	assert.Equal(t, "0 4 * * *", result.Value)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvWithFallback_NoValidator(t *testing.T) {
	t.Setenv("TEST_STRING", "any_value")

	result := LoadEnvWithFallback("TEST_STRING", "default", nil)

	// Without validator, any value should be accepted
	assert.Equal(t, "any_value", result.Value)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvWithFallback_InvalidCronSchedule(t *testing.T) {
	t.Setenv("TEST_CRON", "invalid format")

	result := LoadEnvWithFallback("TEST_CRON", "0 4 * * *", ValidateCronSchedule)

	assert.Equal(t, "0 4 * * *", result.Value)
	assert.True(t, result.FallbackApplied)

	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Invalid TEST_CRON='invalid format'")
	assert.Contains(t, result.Warnings[0], "falling back to default '0 4 * * *'")
}

func TestLoadEnvWithFallback_InvalidTimezone(t *testing.T) {
	t.Setenv("TEST_TZ", "Invalid/Timezone")

	result := LoadEnvWithFallback("TEST_TZ", "Europe/Berlin", ValidateTimezone)

	assert.Equal(t, "Europe/Berlin", result.Value)
	assert.True(t, result.FallbackApplied)

	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Invalid TEST_TZ='Invalid/Timezone'")
}

// ============================================================================
// Test Group 3: LoadEnvDuration
// ============================================================================

func TestLoadEnvDuration_WithValidValue(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "45m")

	result := LoadEnvDuration("TEST_TIMEOUT", time.Hour, ValidatePositiveDuration)

	assert.Equal(t, 45*time.Minute, result.Value)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvDuration_WithoutValue(t *testing.T) {
	result := LoadEnvDuration("TEST_TIMEOUT", time.Hour, ValidatePositiveDuration)

	assert.Equal(t, time.Hour, result.Value)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvDuration_UnparseableValue(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "eine Stunde")

	result := LoadEnvDuration("TEST_TIMEOUT", time.Hour, ValidatePositiveDuration)

	assert.Equal(t, time.Hour, result.Value)
	assert.True(t, result.FallbackApplied)
	assert.Contains(t, result.Warnings[0], "Invalid TEST_TIMEOUT='eine Stunde'")
}

func TestLoadEnvDuration_FailsValidation(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "-5m")

	result := LoadEnvDuration("TEST_TIMEOUT", time.Hour, ValidatePositiveDuration)

	assert.Equal(t, time.Hour, result.Value)
	assert.True(t, result.FallbackApplied)
}

func TestLoadEnvDuration_RangeValidator(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "10h")

	result := LoadEnvDuration("TEST_TIMEOUT", time.Hour, func(d time.Duration) error {
		return ValidateDuration(d, time.Minute, 4*time.Hour)
	})

	// 10h exceeds the 4h ceiling
	assert.Equal(t, time.Hour, result.Value)
	assert.True(t, result.FallbackApplied)
}

// ============================================================================
// Test Group 4: LoadEnvInt
// ============================================================================

func TestLoadEnvInt_WithValidValue(t *testing.T) {
	t.Setenv("TEST_WORKERS", "8")

	result := LoadEnvInt("TEST_WORKERS", 4, func(v int) error {
		return ValidateIntRange(v, 1, 32)
	})

	assert.Equal(t, 8, result.Value)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvInt_WithoutValue(t *testing.T) {
	result := LoadEnvInt("TEST_WORKERS", 4, nil)

	assert.Equal(t, 4, result.Value)
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvInt_NotAnInteger(t *testing.T) {
	t.Setenv("TEST_WORKERS", "vier")

	result := LoadEnvInt("TEST_WORKERS", 4, nil)

	assert.Equal(t, 4, result.Value)
	assert.True(t, result.FallbackApplied)
	assert.Contains(t, result.Warnings[0], "invalid integer format")
}

func TestLoadEnvInt_OutOfRange(t *testing.T) {
	t.Setenv("TEST_WORKERS", "100")

	result := LoadEnvInt("TEST_WORKERS", 4, func(v int) error {
		return ValidateIntRange(v, 1, 32)
	})

	assert.Equal(t, 4, result.Value)
	assert.True(t, result.FallbackApplied)
}

// ============================================================================
// Test Group 5: LoadEnvBool
// ============================================================================

func TestLoadEnvBool_TrueValues(t *testing.T) {
	for _, v := range []string{"1", "t", "T", "true", "TRUE", "True"} {
		t.Setenv("TEST_FLAG", v)

		result := LoadEnvBool("TEST_FLAG", false)

		assert.Equal(t, true, result.Value, "value %q", v)
		assert.False(t, result.FallbackApplied)
	}
}

func TestLoadEnvBool_FalseValues(t *testing.T) {
	for _, v := range []string{"0", "f", "F", "false", "FALSE", "False"} {
		t.Setenv("TEST_FLAG", v)

		result := LoadEnvBool("TEST_FLAG", true)

		assert.Equal(t, false, result.Value, "value %q", v)
		assert.False(t, result.FallbackApplied)
	}
}

func TestLoadEnvBool_InvalidValue(t *testing.T) {
	t.Setenv("TEST_FLAG", "ja")

	result := LoadEnvBool("TEST_FLAG", true)

	assert.Equal(t, true, result.Value)
	assert.True(t, result.FallbackApplied)
	assert.Contains(t, result.Warnings[0], "invalid boolean format")
}

func TestLoadEnvBool_WithoutValue(t *testing.T) {
	result := LoadEnvBool("TEST_FLAG", true)

	assert.Equal(t, true, result.Value)
	assert.False(t, result.FallbackApplied)
}
