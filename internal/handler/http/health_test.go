package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kuckmal/internal/usecase/search"
	syncuc "kuckmal/internal/usecase/sync"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────────────────────── stub providers ───────────────────────── */

type stubSyncStatus struct {
	status syncuc.Status
}

func (s *stubSyncStatus) Status() syncuc.Status { return s.status }

type stubCacheStats struct {
	stats search.CacheStats
}

func (s *stubCacheStats) CacheStats() search.CacheStats { return s.stats }

/* ───────────────────────── health handler ───────────────────────── */

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(sqlmock.Sqlmock)
		expectedStatus int
		expectHealthy  bool
	}{
		{
			name: "healthy database",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing()
			},
			expectedStatus: http.StatusOK,
			expectHealthy:  true,
		},
		{
			name: "database connection error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(sql.ErrConnDone)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectHealthy:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			if tt.setupMock != nil {
				tt.setupMock(mock)
			}

			handler := &HealthHandler{
				DB:      db,
				Version: "test-version",
			}

			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var response HealthResponse
			err = json.NewDecoder(rec.Body).Decode(&response)
			require.NoError(t, err)

			if tt.expectHealthy {
				assert.Equal(t, "healthy", response.Status)
			} else {
				assert.Equal(t, "unhealthy", response.Status)
			}
			assert.Equal(t, "test-version", response.Version)
			assert.NotEmpty(t, response.Timestamp)
			assert.Contains(t, response.Checks, "database")

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthHandler_NoDatabaseConfigured(t *testing.T) {
	handler := &HealthHandler{
		DB:      nil,
		Version: "test-version",
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var response HealthResponse
	err := json.NewDecoder(rec.Body).Decode(&response)
	require.NoError(t, err)

	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "not configured", response.Checks["database"].Message)
}

func TestHealthHandler_MaxOpenConnectionsZero(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	// MaxOpenConns 0 means unlimited; utilization cannot be computed
	db.SetMaxOpenConns(0)

	mock.ExpectPing()

	handler := &HealthHandler{
		DB:      db,
		Version: "test-version",
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	// Should not panic
	handler.ServeHTTP(rec, req)

	// Degraded is still considered operational
	assert.Equal(t, http.StatusOK, rec.Code)

	var response HealthResponse
	err = json.NewDecoder(rec.Body).Decode(&response)
	require.NoError(t, err)

	assert.Equal(t, "healthy", response.Status)

	dbCheck := response.Checks["database"]
	assert.Equal(t, "degraded", dbCheck.Status)
	assert.Equal(t, "connection pool max connections not configured", dbCheck.Message)

	assert.NotNil(t, dbCheck.Details)
	// JSON unmarshaling converts numbers to float64
	assert.Equal(t, float64(0), dbCheck.Details["max_open_connections"])

	_, hasUtilization := dbCheck.Details["utilization_percent"]
	assert.False(t, hasUtilization, "utilization_percent should not be present when MaxOpenConnections is 0")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthHandler_PoolUtilization(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	db.SetMaxOpenConns(10)

	mock.ExpectPing()

	handler := &HealthHandler{
		DB:      db,
		Version: "test-version",
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response HealthResponse
	err = json.NewDecoder(rec.Body).Decode(&response)
	require.NoError(t, err)

	// With sqlmock no connection is in use, so utilization is 0%
	dbCheck := response.Checks["database"]
	assert.Equal(t, "healthy", dbCheck.Status)

	assert.Contains(t, dbCheck.Details, "utilization_percent")
	utilization := dbCheck.Details["utilization_percent"].(float64)
	assert.Equal(t, float64(0), utilization)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthHandler_SyncHealthy(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectPing()

	finished := time.Date(2025, 12, 1, 4, 12, 0, 0, time.UTC)
	handler := &HealthHandler{
		DB:      db,
		Version: "test-version",
		Sync: &stubSyncStatus{status: syncuc.Status{
			Running:        false,
			Kind:           "full",
			Stage:          "idle",
			EntriesWritten: 520000,
			FinishedAt:     &finished,
		}},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response HealthResponse
	err = json.NewDecoder(rec.Body).Decode(&response)
	require.NoError(t, err)

	syncCheck := response.Checks["sync"]
	assert.Equal(t, "healthy", syncCheck.Status)
	assert.Equal(t, "full", syncCheck.Details["kind"])
	assert.Equal(t, "2025-12-01T04:12:00Z", syncCheck.Details["finished_at"])
	assert.Equal(t, float64(520000), syncCheck.Details["entries_written"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthHandler_SyncFailureDegrades(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectPing()

	handler := &HealthHandler{
		DB:      db,
		Version: "test-version",
		Sync: &stubSyncStatus{status: syncuc.Status{
			Stage:     "idle",
			LastError: "download full list: connection refused",
		}},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	// Stale catalog degrades the sync check but the probe still passes
	assert.Equal(t, http.StatusOK, rec.Code)

	var response HealthResponse
	err = json.NewDecoder(rec.Body).Decode(&response)
	require.NoError(t, err)

	assert.Equal(t, "healthy", response.Status)

	syncCheck := response.Checks["sync"]
	assert.Equal(t, "degraded", syncCheck.Status)
	assert.Equal(t, "download full list: connection refused", syncCheck.Message)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthHandler_SearchCacheStats(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectPing()

	handler := &HealthHandler{
		DB:      db,
		Version: "test-version",
		SearchCache: &stubCacheStats{stats: search.CacheStats{
			Hits:        42,
			Misses:      7,
			Evictions:   3,
			CurrentSize: 12,
		}},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response HealthResponse
	err = json.NewDecoder(rec.Body).Decode(&response)
	require.NoError(t, err)

	cacheCheck := response.Checks["search_cache"]
	assert.Equal(t, "healthy", cacheCheck.Status)
	assert.Equal(t, float64(42), cacheCheck.Details["hits"])
	assert.Equal(t, float64(7), cacheCheck.Details["misses"])
	assert.Equal(t, float64(12), cacheCheck.Details["current_size"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthHandler_CacheControl(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectPing()

	handler := &HealthHandler{
		DB:      db,
		Version: "test-version",
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* ───────────────────────── probes ───────────────────────── */

func TestReadyHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(sqlmock.Sqlmock)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "ready",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "ready",
		},
		{
			name: "database not ready",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(sql.ErrConnDone)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			if tt.setupMock != nil {
				tt.setupMock(mock)
			}

			handler := &ReadyHandler{DB: db}

			req := httptest.NewRequest(http.MethodGet, "/healthz/ready", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, rec.Body.String())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReadyHandler_NoDatabaseConfigured(t *testing.T) {
	handler := &ReadyHandler{DB: nil}

	req := httptest.NewRequest(http.MethodGet, "/healthz/ready", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "database not configured")
}

func TestReadyHandler_Timeout(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	// Slow ping exceeds the 2 second probe timeout
	mock.ExpectPing().WillDelayFor(3 * time.Second)

	handler := &ReadyHandler{DB: db}

	req := httptest.NewRequest(http.MethodGet, "/healthz/ready", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLiveHandler_ServeHTTP(t *testing.T) {
	handler := &LiveHandler{}

	req := httptest.NewRequest(http.MethodGet, "/healthz/live", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}
