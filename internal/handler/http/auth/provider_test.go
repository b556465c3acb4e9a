package auth

import (
	"context"
	"strings"
	"testing"

	authservice "kuckmal/internal/service/auth"
)

func TestNewBasicAuthProvider(t *testing.T) {
	weakPasswords := []string{"admin", "password", "123456"}
	provider := NewBasicAuthProvider(12, weakPasswords)

	if provider == nil {
		t.Fatal("expected provider to be non-nil")
	}

	if provider.minPasswordLength != 12 {
		t.Errorf("expected minPasswordLength to be 12, got %d", provider.minPasswordLength)
	}

	if len(provider.weakPasswords) != 3 {
		t.Errorf("expected 3 weak passwords, got %d", len(provider.weakPasswords))
	}
}

func TestBasicAuthProvider_Name(t *testing.T) {
	provider := NewBasicAuthProvider(12, nil)

	if provider.Name() != "basic" {
		t.Errorf("expected name to be 'basic', got '%s'", provider.Name())
	}
}

func TestBasicAuthProvider_GetRequirements(t *testing.T) {
	weakPasswords := []string{"admin", "password"}
	provider := NewBasicAuthProvider(10, weakPasswords)

	reqs := provider.GetRequirements()

	if reqs.MinPasswordLength != 10 {
		t.Errorf("expected MinPasswordLength to be 10, got %d", reqs.MinPasswordLength)
	}

	if len(reqs.WeakPasswords) != 2 {
		t.Errorf("expected 2 weak passwords, got %d", len(reqs.WeakPasswords))
	}
}

func TestBasicAuthProvider_ValidateCredentials(t *testing.T) {
	t.Setenv(EnvAdminUser, "testadmin")
	t.Setenv(EnvAdminPassword, "ValidPassword123")

	weakPasswords := []string{"admin", "password", "123456"}
	provider := NewBasicAuthProvider(12, weakPasswords)

	tests := []struct {
		name        string
		creds       authservice.Credentials
		expectError bool
		errorMsg    string
	}{
		{
			name: "valid credentials",
			creds: authservice.Credentials{
				Username: "testadmin",
				Password: "ValidPassword123",
			},
		},
		{
			name: "empty username",
			creds: authservice.Credentials{
				Username: "",
				Password: "ValidPassword123",
			},
			expectError: true,
			errorMsg:    "credentials must not be empty",
		},
		{
			name: "empty password",
			creds: authservice.Credentials{
				Username: "testadmin",
				Password: "",
			},
			expectError: true,
			errorMsg:    "credentials must not be empty",
		},
		{
			name: "password too short",
			creds: authservice.Credentials{
				Username: "testadmin",
				Password: "short",
			},
			expectError: true,
			errorMsg:    "at least 12 characters",
		},
		{
			name: "weak password exact match",
			creds: authservice.Credentials{
				Username: "testadmin",
				Password: "password9012",
			},
			expectError: true,
			errorMsg:    "weak password",
		},
		{
			name: "wrong username",
			creds: authservice.Credentials{
				Username: "intruder",
				Password: "ValidPassword123",
			},
			expectError: true,
			errorMsg:    "invalid credentials",
		},
		{
			name: "wrong password",
			creds: authservice.Credentials{
				Username: "testadmin",
				Password: "WrongPassword999",
			},
			expectError: true,
			errorMsg:    "invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := provider.ValidateCredentials(context.Background(), tt.creds)

			if !tt.expectError {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error but got nil")
			}
			if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errorMsg, err.Error())
			}
		})
	}
}

func TestBasicAuthProvider_IdentifyUser(t *testing.T) {
	t.Setenv(EnvAdminUser, "testadmin")

	provider := NewBasicAuthProvider(12, nil)

	tests := []struct {
		name        string
		username    string
		wantRole    string
		expectError bool
	}{
		{
			name:     "admin user",
			username: "testadmin",
			wantRole: RoleAdmin,
		},
		{
			name:        "unknown user",
			username:    "someone-else",
			expectError: true,
		},
		{
			name:        "empty username",
			username:    "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := provider.IdentifyUser(context.Background(), tt.username)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if role != tt.wantRole {
				t.Errorf("expected role %q, got %q", tt.wantRole, role)
			}
		})
	}
}

func TestBasicAuthProvider_ValidateStartupCredentials(t *testing.T) {
	provider := NewBasicAuthProvider(DefaultMinPasswordLength, DefaultWeakPasswords)

	tests := []struct {
		name        string
		user        string
		pass        string
		expectError bool
	}{
		{
			name: "valid credentials",
			user: "admin-kuckmal",
			pass: "Zv8#mKq2Lw!xR4t",
		},
		{
			name:        "empty user",
			user:        "",
			pass:        "Zv8#mKq2Lw!xR4t",
			expectError: true,
		},
		{
			name:        "empty password",
			user:        "admin-kuckmal",
			pass:        "",
			expectError: true,
		},
		{
			name:        "too short",
			user:        "admin-kuckmal",
			pass:        "Zv8#mKq",
			expectError: true,
		},
		{
			name:        "weak prefix",
			user:        "admin-kuckmal",
			pass:        "password12345678",
			expectError: true,
		},
		{
			name:        "weak prefix uppercase",
			user:        "admin-kuckmal",
			pass:        "Passwort12345678",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAdminUser, tt.user)
			t.Setenv(EnvAdminPassword, tt.pass)

			err := provider.ValidateStartupCredentials()

			if tt.expectError && err == nil {
				t.Fatal("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
		})
	}
}

func TestBasicAuthProvider_ConstantTimeRejection(t *testing.T) {
	// Wrong username and wrong password must produce the same error, so the
	// response does not reveal which half was wrong.
	t.Setenv(EnvAdminUser, "testadmin")
	t.Setenv(EnvAdminPassword, "ValidPassword123")

	provider := NewBasicAuthProvider(12, nil)

	errUser := provider.ValidateCredentials(context.Background(), authservice.Credentials{
		Username: "wronguser",
		Password: "ValidPassword123",
	})
	errPass := provider.ValidateCredentials(context.Background(), authservice.Credentials{
		Username: "testadmin",
		Password: "WrongPassword999",
	})

	if errUser == nil || errPass == nil {
		t.Fatal("expected both validations to fail")
	}
	if errUser.Error() != errPass.Error() {
		t.Errorf("error messages differ: %q vs %q", errUser.Error(), errPass.Error())
	}
}
