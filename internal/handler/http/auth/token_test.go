package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authservice "kuckmal/internal/service/auth"

	"github.com/golang-jwt/jwt/v5"
)

func newTestAuthService() *authservice.AuthService {
	provider := NewBasicAuthProvider(12, []string{"admin", "password"})
	return authservice.NewAuthService(provider)
}

func postToken(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestTokenHandler_Success(t *testing.T) {
	t.Setenv(EnvAdminUser, "testadmin")
	t.Setenv(EnvAdminPassword, "Fernseh-T0r-88!x")

	secret := []byte("test-secret-key")
	handler := TokenHandler(newTestAuthService(), Config{Secret: secret, Expiry: time.Hour})

	rec := postToken(t, handler, `{"username":"testadmin","password":"Fernseh-T0r-88!x"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token in the response")
	}

	tok, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if claims["sub"] != "testadmin" {
		t.Errorf("expected sub 'testadmin', got %v", claims["sub"])
	}
	if claims["role"] != RoleAdmin {
		t.Errorf("expected role %q, got %v", RoleAdmin, claims["role"])
	}

	until := time.Until(resp.ExpiresAt)
	if until < 55*time.Minute || until > 65*time.Minute {
		t.Errorf("expected expiry about an hour out, got %v", until)
	}
}

func TestTokenHandler_DefaultExpiry(t *testing.T) {
	t.Setenv(EnvAdminUser, "testadmin")
	t.Setenv(EnvAdminPassword, "Fernseh-T0r-88!x")

	// Zero expiry falls back to DefaultExpiry.
	handler := TokenHandler(newTestAuthService(), Config{Secret: []byte("test-secret-key")})

	rec := postToken(t, handler, `{"username":"testadmin","password":"Fernseh-T0r-88!x"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		ExpiresAt time.Time `json:"expiresAt"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	until := time.Until(resp.ExpiresAt)
	if until < DefaultExpiry-5*time.Minute || until > DefaultExpiry+5*time.Minute {
		t.Errorf("expected default expiry about %v out, got %v", DefaultExpiry, until)
	}
}

func TestTokenHandler_InvalidBody(t *testing.T) {
	t.Setenv(EnvAdminUser, "testadmin")
	t.Setenv(EnvAdminPassword, "Fernseh-T0r-88!x")

	handler := TokenHandler(newTestAuthService(), Config{Secret: []byte("test-secret-key")})

	rec := postToken(t, handler, `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"validation_error"`) {
		t.Errorf("expected validation_error code, got %s", rec.Body.String())
	}
}

func TestTokenHandler_InvalidCredentials(t *testing.T) {
	t.Setenv(EnvAdminUser, "testadmin")
	t.Setenv(EnvAdminPassword, "Fernseh-T0r-88!x")

	handler := TokenHandler(newTestAuthService(), Config{Secret: []byte("test-secret-key")})

	tests := []struct {
		name string
		body string
	}{
		{
			name: "wrong password",
			body: `{"username":"testadmin","password":"WrongPassword99"}`,
		},
		{
			name: "unknown user",
			body: `{"username":"intruder","password":"Fernseh-T0r-88!x"}`,
		},
		{
			name: "empty credentials",
			body: `{"username":"","password":""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postToken(t, handler, tt.body)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"code":"unauthorized"`) {
				t.Errorf("expected unauthorized code, got %s", rec.Body.String())
			}
			// The envelope must not explain which half of the credentials
			// failed.
			if strings.Contains(rec.Body.String(), "password") {
				t.Errorf("response leaks credential detail: %s", rec.Body.String())
			}
		})
	}
}

func TestTokenHandler_IssuedTokenPassesMiddleware(t *testing.T) {
	t.Setenv(EnvAdminUser, "testadmin")
	t.Setenv(EnvAdminPassword, "Fernseh-T0r-88!x")

	secret := []byte("test-secret-key")
	handler := TokenHandler(newTestAuthService(), Config{Secret: secret, Expiry: time.Hour})

	rec := postToken(t, handler, `{"username":"testadmin","password":"Fernseh-T0r-88!x"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("token issue failed: %d", rec.Code)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	var gotUser string
	protected := RequireAdmin(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/filmliste/sync", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec2 := httptest.NewRecorder()
	protected.ServeHTTP(rec2, req)

	if rec2.Code != http.StatusNoContent {
		t.Fatalf("expected issued token to pass, got %d: %s", rec2.Code, rec2.Body.String())
	}
	if gotUser != "testadmin" {
		t.Errorf("expected user 'testadmin' in context, got %q", gotUser)
	}
}
