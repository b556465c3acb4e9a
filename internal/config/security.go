// Package config loads the optional YAML security configuration. The file
// tunes the auth provider, password policy, and JWT issuance; deployments
// without one run on DefaultSecurityConfig.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SecurityConfig represents security configuration.
type SecurityConfig struct {
	Security struct {
		Auth struct {
			Provider string `yaml:"provider"`
			Basic    struct {
				MinPasswordLength int      `yaml:"min_password_length"`
				WeakPasswords     []string `yaml:"weak_passwords"`
			} `yaml:"basic"`
		} `yaml:"auth"`
		JWT struct {
			SecretEnv   string `yaml:"secret_env"`
			ExpiryHours int    `yaml:"expiry_hours"`
		} `yaml:"jwt"`
	} `yaml:"security"`
}

// DefaultSecurityConfig returns the configuration used when no YAML file is
// configured: basic provider, 12-character password floor, JWT_SECRET env,
// one-hour tokens. An empty weak password list means the provider's built-in
// list applies.
func DefaultSecurityConfig() *SecurityConfig {
	cfg := &SecurityConfig{}
	cfg.Security.Auth.Provider = "basic"
	cfg.Security.Auth.Basic.MinPasswordLength = 12
	cfg.Security.JWT.SecretEnv = "JWT_SECRET"
	cfg.Security.JWT.ExpiryHours = 1
	return cfg
}

// LoadSecurityConfig loads security configuration from a YAML file.
// The path is expected to come from a trusted source (command-line argument
// or the SECURITY_CONFIG environment variable), not user input.
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	// #nosec G304 -- path is provided by trusted source (CLI arg or env), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SecurityConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateSecurityConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// validateSecurityConfig validates the loaded configuration.
func validateSecurityConfig(config *SecurityConfig) error {
	if config.Security.Auth.Provider == "" {
		return fmt.Errorf("auth provider is required")
	}

	if config.Security.Auth.Provider == "basic" {
		if config.Security.Auth.Basic.MinPasswordLength <= 0 {
			return fmt.Errorf("min_password_length must be positive")
		}

		if config.Security.Auth.Basic.MinPasswordLength < 8 {
			return fmt.Errorf("min_password_length must be at least 8")
		}
	}

	if config.Security.JWT.SecretEnv == "" {
		return fmt.Errorf("jwt secret_env is required")
	}

	if config.Security.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("jwt expiry_hours must be positive")
	}

	return nil
}

// GetAuthProvider returns the configured authentication provider name.
func (c *SecurityConfig) GetAuthProvider() string {
	return c.Security.Auth.Provider
}

// GetMinPasswordLength returns the minimum password length requirement.
func (c *SecurityConfig) GetMinPasswordLength() int {
	return c.Security.Auth.Basic.MinPasswordLength
}

// GetWeakPasswords returns the list of weak passwords.
func (c *SecurityConfig) GetWeakPasswords() []string {
	return c.Security.Auth.Basic.WeakPasswords
}

// GetJWTSecretEnv returns the environment variable name holding the JWT
// signing secret.
func (c *SecurityConfig) GetJWTSecretEnv() string {
	return c.Security.JWT.SecretEnv
}

// GetJWTExpiryHours returns the JWT expiry time in hours.
func (c *SecurityConfig) GetJWTExpiryHours() int {
	return c.Security.JWT.ExpiryHours
}
