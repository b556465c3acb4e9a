package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"
	"strings"

	authservice "kuckmal/internal/service/auth"
)

// Role constants used in JWT claims and permission checks.
const (
	// RoleAdmin may call the mutating catalog and sync endpoints.
	RoleAdmin = "admin"
)

// Environment variables holding the admin credentials.
const (
	EnvAdminUser     = "ADMIN_USER"
	EnvAdminPassword = "ADMIN_PASSWORD"
)

// DefaultMinPasswordLength is the password length floor when no security
// config file overrides it.
const DefaultMinPasswordLength = 12

// DefaultWeakPasswords lists passwords rejected regardless of length. A
// password matching or starting with any entry is refused.
var DefaultWeakPasswords = []string{
	"admin",
	"password",
	"passwort",
	"123456",
	"12345678",
	"123456789",
	"qwerty",
	"qwertz",
	"secret",
	"geheim",
	"letmein",
	"welcome",
	"kuckmal",
	"test",
	"root",
	"default",
}

// BasicAuthProvider validates credentials against the ADMIN_USER and
// ADMIN_PASSWORD environment variables. It backs the single-admin deployment
// shape; anything fancier belongs behind its own AuthProvider.
type BasicAuthProvider struct {
	minPasswordLength int
	weakPasswords     []string
}

// NewBasicAuthProvider creates a new basic auth provider.
func NewBasicAuthProvider(minPasswordLength int, weakPasswords []string) *BasicAuthProvider {
	return &BasicAuthProvider{
		minPasswordLength: minPasswordLength,
		weakPasswords:     weakPasswords,
	}
}

// ValidateCredentials validates credentials against environment variables.
func (p *BasicAuthProvider) ValidateCredentials(ctx context.Context, creds authservice.Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("credentials must not be empty")
	}

	if len(creds.Password) < p.minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", p.minPasswordLength)
	}

	for _, weak := range p.weakPasswords {
		if creds.Password == weak || strings.HasPrefix(creds.Password, weak) {
			return fmt.Errorf("weak password detected")
		}
	}

	adminUser := os.Getenv(EnvAdminUser)
	adminPass := os.Getenv(EnvAdminPassword)

	// Constant-time comparison to prevent timing attacks.
	userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(adminUser)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(adminPass)) == 1

	if !userMatch || !passMatch {
		return fmt.Errorf("invalid credentials")
	}

	return nil
}

// IdentifyUser returns the role for a given username. The basic provider
// knows exactly one user, the admin.
func (p *BasicAuthProvider) IdentifyUser(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("username must not be empty")
	}

	adminUser := os.Getenv(EnvAdminUser)

	if subtle.ConstantTimeCompare([]byte(username), []byte(adminUser)) == 1 {
		return RoleAdmin, nil
	}

	return "", fmt.Errorf("user not found")
}

// GetRequirements returns the password requirements.
func (p *BasicAuthProvider) GetRequirements() authservice.CredentialRequirements {
	return authservice.CredentialRequirements{
		MinPasswordLength: p.minPasswordLength,
		WeakPasswords:     p.weakPasswords,
	}
}

// Name returns the provider name.
func (p *BasicAuthProvider) Name() string {
	return "basic"
}

// ValidateStartupCredentials checks the admin credential environment at boot
// so a server never comes up issuing tokens for empty or weak credentials.
// Call it from main before binding the listener.
func (p *BasicAuthProvider) ValidateStartupCredentials() error {
	user := os.Getenv(EnvAdminUser)
	pass := os.Getenv(EnvAdminPassword)

	if user == "" {
		return fmt.Errorf("admin credentials validation failed: %s must not be empty", EnvAdminUser)
	}
	if pass == "" {
		return fmt.Errorf("admin credentials validation failed: %s must not be empty", EnvAdminPassword)
	}
	if len(pass) < p.minPasswordLength {
		return fmt.Errorf("admin credentials validation failed: password must be at least %d characters", p.minPasswordLength)
	}
	lower := strings.ToLower(pass)
	for _, weak := range p.weakPasswords {
		if lower == weak || strings.HasPrefix(lower, weak) {
			return fmt.Errorf("admin credentials validation failed: password matches a known weak pattern")
		}
	}
	return nil
}
