// Package auth holds the transport-agnostic authentication service.
// Providers validate credentials against a backing store; the service fronts
// whichever provider the deployment configured.
package auth

import "context"

// Credentials represents authentication credentials.
type Credentials struct {
	Username string
	Password string
}

// CredentialRequirements defines the password policy a provider enforces.
type CredentialRequirements struct {
	MinPasswordLength int
	WeakPasswords     []string
}

// AuthProvider is implemented by credential backends.
type AuthProvider interface {
	// ValidateCredentials validates user credentials.
	ValidateCredentials(ctx context.Context, creds Credentials) error

	// IdentifyUser returns the role for a known username.
	IdentifyUser(ctx context.Context, username string) (string, error)

	// GetRequirements returns the credential requirements for this provider.
	GetRequirements() CredentialRequirements

	// Name returns the name of this provider.
	Name() string
}

// AuthService handles authentication business logic. It is independent of any
// HTTP framework so the CLI and tests can use it directly.
type AuthService struct {
	provider AuthProvider
}

// NewAuthService creates a new authentication service.
func NewAuthService(provider AuthProvider) *AuthService {
	return &AuthService{provider: provider}
}

// ValidateCredentials validates user credentials via the configured provider.
func (s *AuthService) ValidateCredentials(ctx context.Context, creds Credentials) error {
	return s.provider.ValidateCredentials(ctx, creds)
}

// IdentifyUser returns the role of the given user.
func (s *AuthService) IdentifyUser(ctx context.Context, username string) (string, error) {
	return s.provider.IdentifyUser(ctx, username)
}

// GetProvider returns the current authentication provider.
func (s *AuthService) GetProvider() AuthProvider {
	return s.provider
}
