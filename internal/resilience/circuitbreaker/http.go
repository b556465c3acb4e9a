package circuitbreaker

import (
	"errors"
	"net/http"
	"time"
)

// Doer is the subset of *http.Client the breaker wraps.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// APIClientConfig returns configuration for calls against the catalog
// API. Client-side timeouts are short, so the breaker recovers quickly
// once the server answers again.
func APIClientConfig() Config {
	return Config{
		Name:             "catalog-api-client",
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          20 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// errServerStatus marks a 5xx response inside the breaker callback. It
// never escapes Do; callers see the response and its status code.
var errServerStatus = errors.New("upstream returned a server error")

// HTTPBreaker wraps a Doer with circuit breaker protection. Transport
// failures and 5xx responses count against the circuit; 4xx responses
// do not, since they reflect the request, not the upstream's health.
// While the circuit is open, Do fails fast with gobreaker.ErrOpenState.
type HTTPBreaker struct {
	cb   *CircuitBreaker
	next Doer
}

// NewHTTPBreaker wraps next with a breaker using the given configuration.
func NewHTTPBreaker(next Doer, cfg Config) *HTTPBreaker {
	return &HTTPBreaker{cb: New(cfg), next: next}
}

// Do performs the request through the circuit.
func (b *HTTPBreaker) Do(req *http.Request) (*http.Response, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		resp, err := b.next.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			// Counts as a failure, but the caller still gets the
			// response to decode the error envelope.
			return resp, errServerStatus
		}
		return resp, nil
	})
	if err != nil && !errors.Is(err, errServerStatus) {
		return nil, err
	}
	return result.(*http.Response), nil
}

// State returns the current circuit state.
func (b *HTTPBreaker) State() string {
	return b.cb.State().String()
}
