// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// Error codes carried in the code field of error envelopes. Clients branch
// on these instead of parsing messages.
const (
	CodeValidation   = "validation_error"
	CodeNotFound     = "not_found"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeConflict     = "conflict"
	CodeRateLimited  = "rate_limited"
	CodeTimeout      = "timeout"
	CodeInternal     = "internal_error"
)

// ErrorBody is the envelope for every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers already sent, the failure can only be logged.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error envelope with the given status, code, and
// message. The message is sent verbatim; use SafeError for errors that may
// carry internal details.
func Error(w http.ResponseWriter, status int, code string, err error) {
	JSON(w, status, ErrorBody{Error: err.Error(), Code: code})
}

// SafeError sanitizes error messages before returning them to users.
// Internal errors (e.g., database errors) are returned as "internal server error",
// with details logged for debugging. Safe errors (validation errors) are returned as-is.
func SafeError(w http.ResponseWriter, status int, code string, err error) {
	if err == nil {
		return
	}

	msg := err.Error()

	// Phrases that mark an error as safe to show: validation and lookup
	// failures phrase themselves with these.
	safeErrors := []string{
		"required",
		"invalid",
		"not found",
		"already",
		"must be",
		"must not",
		"cannot be",
		"too long",
		"too large",
		"exceeded",
	}

	isSafe := false
	lowerMsg := strings.ToLower(msg)
	for _, safe := range safeErrors {
		if strings.Contains(lowerMsg, safe) {
			isSafe = true
			break
		}
	}

	// 5xx responses never expose their cause.
	if status >= 500 {
		isSafe = false
	}

	if isSafe {
		JSON(w, status, ErrorBody{Error: msg, Code: code})
		return
	}

	logger := slog.Default()
	logger.Error("internal server error",
		slog.String("status", http.StatusText(status)),
		slog.Int("code", status),
		slog.String("error", SanitizeError(err)))
	JSON(w, status, ErrorBody{Error: "internal server error", Code: CodeInternal})
}

// AppError is an error type that carries a user-facing message alongside
// the internal cause.
type AppError struct {
	UserMsg string // Message to display to users
	Err     error  // Internal error (logged for debugging)
	Status  int    // HTTP status code
	Code    string // Machine-readable error code
}

// Error returns the error message, implementing the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

// Unwrap returns the underlying error, implementing the errors.Unwrap interface.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters.
func NewAppError(status int, code, userMsg string, err error) *AppError {
	return &AppError{Status: status, Code: code, UserMsg: userMsg, Err: err}
}

// AppSafeError handles errors with AppError support. If the error is an
// AppError, it returns the user message and logs the internal cause.
// Otherwise it falls back to SafeError behavior.
func AppSafeError(w http.ResponseWriter, status int, code string, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			logger := slog.Default()
			logger.Error("application error",
				slog.String("status", http.StatusText(appErr.Status)),
				slog.Int("code", appErr.Status),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", SanitizeError(appErr.Err)))
		}
		JSON(w, appErr.Status, ErrorBody{Error: appErr.UserMsg, Code: appErr.Code})
		return
	}

	SafeError(w, status, code, err)
}
