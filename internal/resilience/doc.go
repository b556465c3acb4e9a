// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breakers and retry logic so a flaky catalog mirror or a
// briefly unavailable database does not cascade into request failures.
//
// The package supports:
//   - Circuit breakers for catalog list downloads and media URL probes
//   - Retry logic with exponential backoff and jitter
//   - A database wrapper that sheds load when the store is down
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.FilmlisteConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return downloadList()
//	})
//
//	retryConfig := retry.FilmlisteConfig()
//	err := retry.WithBackoff(ctx, retryConfig, func() error {
//	    return performDownload()
//	})
package resilience
