package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"kuckmal/internal/resilience/retry"
)

// Sentinel errors of the client.
var (
	// ErrNotFound matches any 404 API response via errors.Is.
	ErrNotFound = errors.New("entry not found")

	// ErrOffline means the degradation chain is exhausted: the network
	// failed, no stale value was cached, and the offline dataset cannot
	// answer the request either.
	ErrOffline = errors.New("catalog unreachable and no offline data for this request")
)

// APIError is a non-2xx response from the catalog API. Code carries the
// machine-readable code from the error envelope ("not_found",
// "validation_error", ...); Message the human-readable text.
type APIError struct {
	Status  int
	Code    string
	Message string

	cause error
}

func newAPIError(status int, code, message string) *APIError {
	e := &APIError{Status: status, Code: code, Message: message}
	switch {
	case status >= http.StatusInternalServerError,
		status == http.StatusTooManyRequests,
		status == http.StatusRequestTimeout:
		// Lets the shared retry helper recognize the response as
		// transient without inspecting this package's types.
		e.cause = &retry.HTTPError{StatusCode: status, Message: message}
	}
	return e
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.cause }

// Is lets callers write errors.Is(err, client.ErrNotFound).
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// upstreamFailure reports whether the response class counts as an
// upstream failure for fallback purposes. 4xx responses are answers,
// not outages.
func (e *APIError) upstreamFailure() bool {
	return e.Status >= http.StatusInternalServerError ||
		e.Status == http.StatusTooManyRequests
}

// networkFailure decides whether an error justifies degrading to stale
// or offline data. Transport errors, attempt timeouts, and 5xx
// responses do; 4xx responses do not. Neither does anything once the
// caller's own context is done: a caller that canceled or ran out of
// time must not be answered from the fallback.
//
// The ctx check is what separates the two faces of
// context.DeadlineExceeded — a hung server trips the per-attempt
// deadline and surfaces the sentinel through a *url.Error while the
// caller's context is still live.
func networkFailure(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if ctx.Err() != nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.upstreamFailure()
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	// Anything else is transport-level: DNS, refused connections,
	// attempt timeouts, an open circuit breaker.
	return true
}
