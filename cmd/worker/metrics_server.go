package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	syncUC "kuckmal/internal/usecase/sync"
)

// HealthResponse represents a simple health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// SyncHealthResponse reports the pipeline state for the readiness probe.
// Healthy is false when the last run ended in an error.
type SyncHealthResponse struct {
	Healthy bool          `json:"healthy"`
	Sync    syncUC.Status `json:"sync"`
}

// startMetricsServer starts the Prometheus metrics HTTP server.
// It runs in a separate goroutine and shuts down when ctx is canceled.
//
// Endpoints:
//   - GET /metrics      - Prometheus metrics
//   - GET /health       - Liveness probe, always 200
//   - GET /health/sync  - Pipeline state; 503 when the last run errored
//
// METRICS_PORT selects the port (default 9090).
func startMetricsServer(ctx context.Context, logger *slog.Logger, syncSvc *syncUC.Service) *http.Server {
	port := getMetricsPort()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/health/sync", syncHealthHandler(syncSvc))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("metrics server starting", slog.Int("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", slog.Any("error", err))
		}
	}()

	go func() {
		<-ctx.Done()
		logger.Info("metrics server shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", slog.Any("error", err))
		} else {
			logger.Info("metrics server stopped")
		}
	}()

	return server
}

// getMetricsPort retrieves the metrics server port from environment.
// Defaults to 9090 if not set or invalid.
func getMetricsPort() int {
	portStr := os.Getenv("METRICS_PORT")
	if portStr == "" {
		return 9090
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return 9090
	}

	return port
}

// healthHandler handles GET /health requests (liveness probe).
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
}

// syncHealthHandler creates the handler for GET /health/sync. A worker
// whose last run failed keeps running on schedule, but the probe flags
// it so an operator notices before the catalog goes stale.
func syncHealthHandler(syncSvc *syncUC.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := syncSvc.Status()
		healthy := status.Stage != syncUC.StageError

		statusCode := http.StatusOK
		if !healthy {
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(SyncHealthResponse{
			Healthy: healthy,
			Sync:    status,
		})
	}
}
