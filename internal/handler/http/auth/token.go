package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"kuckmal/internal/handler/http/requestid"
	"kuckmal/internal/handler/http/respond"
	authservice "kuckmal/internal/service/auth"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiry is the token lifetime when the security config does not set
// one.
const DefaultExpiry = time.Hour

// Config carries the signing material for issued tokens.
type Config struct {
	// Secret signs and verifies tokens (HS256).
	Secret []byte
	// Expiry is the token lifetime. Zero means DefaultExpiry.
	Expiry time.Duration
}

type loginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"your_password"`
}

type tokenResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenHandler creates an HTTP handler that authenticates the admin user and
// issues JWT bearer tokens for the mutating endpoints.
//
// @Summary      Issue JWT token
// @Description  Validates admin credentials and returns a signed bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Admin credentials"
// @Success      200 {object} tokenResponse "Signed token and expiry"
// @Failure      400 {object} respond.ErrorBody "Malformed request body"
// @Failure      401 {object} respond.ErrorBody "Invalid credentials"
// @Failure      500 {object} respond.ErrorBody "Token generation failed"
// @Router       /api/auth/token [post]
func TokenHandler(authService *authservice.AuthService, cfg Config) http.HandlerFunc {
	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			RecordAuthDuration(time.Since(start).Seconds())
		}()

		requestID := requestid.FromContext(r.Context())
		logger := slog.With(slog.String("request_id", requestID))

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_request"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("failure")
			respond.Error(w, http.StatusBadRequest, respond.CodeValidation, errors.New("invalid request body"))
			return
		}

		creds := authservice.Credentials{
			Username: req.Username,
			Password: req.Password,
		}

		if err := authService.ValidateCredentials(r.Context(), creds); err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_credentials"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("failure")
			respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, errors.New("invalid credentials"))
			return
		}

		role, err := authService.IdentifyUser(r.Context(), req.Username)
		if err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "role_identification_failed"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("failure")
			respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, errors.New("invalid credentials"))
			return
		}

		expiresAt := time.Now().Add(expiry)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  req.Username,
			"role": role,
			"iat":  time.Now().Unix(),
			"exp":  expiresAt.Unix(),
		})

		signed, err := token.SignedString(cfg.Secret)
		if err != nil {
			logger.Error("token generation failed",
				slog.String("error", err.Error()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("failure")
			respond.SafeError(w, http.StatusInternalServerError, respond.CodeInternal, err)
			return
		}

		logger.Info("authentication successful",
			slog.String("user", req.Username),
			slog.String("role", role),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))

		RecordAuthRequest("success")

		respond.JSON(w, http.StatusOK, tokenResponse{Token: signed, ExpiresAt: expiresAt})
	}
}
