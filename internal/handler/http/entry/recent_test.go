package entry_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kuckmal/internal/domain/entity"
	"kuckmal/internal/handler/http/entry"
	browseUC "kuckmal/internal/usecase/browse"
)

/* ───────── recent listing ───────── */

func TestRecentHandler_Success(t *testing.T) {
	stub := &stubRepo{
		entries: []*entity.MediaEntry{
			sampleEntry(5, "NDR", "Panorama", "Die Folgen der Flut"),
		},
	}
	handler := entry.RecentHandler{Svc: browseUC.NewService(stub)}

	req := httptest.NewRequest(http.MethodGet,
		"/api/entries/recent?minTimestamp=1710000000&limit=10", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp entry.RecentResponse
	decodeBody(t, rr, &resp)
	if resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}
	if resp.MinTimestamp != 1710000000 {
		t.Errorf("minTimestamp = %d, want 1710000000", resp.MinTimestamp)
	}
	if stub.gotMinTS != 1710000000 {
		t.Errorf("repo minTimestamp = %d, want 1710000000", stub.gotMinTS)
	}
	if stub.gotLimit != 10 {
		t.Errorf("repo limit = %d, want 10", stub.gotLimit)
	}
}

func TestRecentHandler_DefaultLimit(t *testing.T) {
	stub := &stubRepo{}
	handler := entry.RecentHandler{Svc: browseUC.NewService(stub)}

	req := httptest.NewRequest(http.MethodGet, "/api/entries/recent", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}
	if stub.gotLimit != 100 {
		t.Errorf("repo limit = %d, want default 100", stub.gotLimit)
	}
	if stub.gotMinTS != 0 {
		t.Errorf("repo minTimestamp = %d, want 0", stub.gotMinTS)
	}
}

func TestRecentHandler_RepoError(t *testing.T) {
	stub := &stubRepo{err: errors.New("database gone")}
	handler := entry.RecentHandler{Svc: browseUC.NewService(stub)}

	req := httptest.NewRequest(http.MethodGet, "/api/entries/recent", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

/* ───────── count ───────── */

func TestCountHandler_Success(t *testing.T) {
	stub := &stubRepo{count: 412377}
	handler := entry.CountHandler{Svc: browseUC.NewService(stub)}

	req := httptest.NewRequest(http.MethodGet, "/api/entries/count", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp entry.CountResponse
	decodeBody(t, rr, &resp)
	if resp.Count != 412377 {
		t.Errorf("count = %d, want 412377", resp.Count)
	}
}

func TestCountHandler_RepoError(t *testing.T) {
	stub := &stubRepo{err: errors.New("database gone")}
	handler := entry.CountHandler{Svc: browseUC.NewService(stub)}

	req := httptest.NewRequest(http.MethodGet, "/api/entries/count", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}
