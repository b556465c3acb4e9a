package entry_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"kuckmal/internal/handler/http/entry"
	browseUC "kuckmal/internal/usecase/browse"
)

/* ───────── full-key lookup ───────── */

func TestDetailHandler_Found(t *testing.T) {
	stub := &stubRepo{entry: sampleEntry(7, "ZDF", "Terra X", "Eine kurze Geschichte der Erde")}
	handler := entry.DetailHandler{Svc: browseUC.NewService(stub)}

	q := url.Values{}
	q.Set("channel", "ZDF")
	q.Set("theme", "Terra X")
	q.Set("title", "Eine kurze Geschichte der Erde")
	req := httptest.NewRequest(http.MethodGet, "/api/entry?"+q.Encode(), nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp entry.DetailResponse
	decodeBody(t, rr, &resp)
	if resp.Data.ID != 7 {
		t.Errorf("data.id = %d, want 7", resp.Data.ID)
	}
	if resp.Data.Theme != "Terra X" {
		t.Errorf("data.theme = %q, want %q", resp.Data.Theme, "Terra X")
	}
	if !resp.Data.IsNew {
		t.Error("data.isNew = false, want true")
	}
}

func TestDetailHandler_NotFound(t *testing.T) {
	stub := &stubRepo{} // entry stays nil
	handler := entry.DetailHandler{Svc: browseUC.NewService(stub)}

	req := httptest.NewRequest(http.MethodGet,
		"/api/entry?channel=ARD&theme=Tatort&title=Gibt+es+nicht", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), `"code":"not_found"`) {
		t.Errorf("expected not_found code, got %s", rr.Body.String())
	}
}

func TestDetailHandler_MissingParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{
			name:  "missing channel",
			query: "?theme=Tatort&title=Borowski",
		},
		{
			name:  "missing theme",
			query: "?channel=ARD&title=Borowski",
		},
		{
			name:  "missing title",
			query: "?channel=ARD&theme=Tatort",
		},
		{
			name:  "no parameters at all",
			query: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubRepo{}
			handler := entry.DetailHandler{Svc: browseUC.NewService(stub)}

			req := httptest.NewRequest(http.MethodGet, "/api/entry"+tt.query, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
			}
			if !strings.Contains(rr.Body.String(), `"code":"validation_error"`) {
				t.Errorf("expected validation_error code, got %s", rr.Body.String())
			}
		})
	}
}

func TestDetailHandler_RepoError(t *testing.T) {
	stub := &stubRepo{err: errors.New("connection reset")}
	handler := entry.DetailHandler{Svc: browseUC.NewService(stub)}

	req := httptest.NewRequest(http.MethodGet,
		"/api/entry?channel=ARD&theme=Tatort&title=Borowski", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rr.Body.String(), "connection reset") {
		t.Errorf("internal cause leaked: %s", rr.Body.String())
	}
}

/* ───────── theme/title lookup ───────── */

func TestDetailByThemeHandler_Found(t *testing.T) {
	stub := &stubRepo{entry: sampleEntry(3, "ARD", "Tatort", "Borowski und das Meer")}
	handler := entry.DetailByThemeHandler{Svc: browseUC.NewService(stub)}

	req := httptest.NewRequest(http.MethodGet,
		"/api/entry/by-theme?theme=Tatort&title=Borowski+und+das+Meer", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp entry.DetailResponse
	decodeBody(t, rr, &resp)
	if resp.Data.Channel != "ARD" {
		t.Errorf("data.channel = %q, want %q", resp.Data.Channel, "ARD")
	}
}

func TestDetailByThemeHandler_MissingParams(t *testing.T) {
	for _, query := range []string{"?title=Borowski", "?theme=Tatort", ""} {
		stub := &stubRepo{}
		handler := entry.DetailByThemeHandler{Svc: browseUC.NewService(stub)}

		req := httptest.NewRequest(http.MethodGet, "/api/entry/by-theme"+query, nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("query %q: status code = %d, want %d", query, rr.Code, http.StatusBadRequest)
		}
	}
}

/* ───────── title-only lookup ───────── */

func TestDetailByTitleHandler_Found(t *testing.T) {
	stub := &stubRepo{entry: sampleEntry(9, "ARTE.DE", "Dokumentation", "Die Geschichte des Essens")}
	handler := entry.DetailByTitleHandler{Svc: browseUC.NewService(stub)}

	req := httptest.NewRequest(http.MethodGet,
		"/api/entry/by-title?title=Die+Geschichte+des+Essens", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp entry.DetailResponse
	decodeBody(t, rr, &resp)
	if resp.Data.Channel != "ARTE.DE" {
		t.Errorf("data.channel = %q, want %q", resp.Data.Channel, "ARTE.DE")
	}
}

func TestDetailByTitleHandler_NotFound(t *testing.T) {
	stub := &stubRepo{}
	handler := entry.DetailByTitleHandler{Svc: browseUC.NewService(stub)}

	req := httptest.NewRequest(http.MethodGet, "/api/entry/by-title?title=Unbekannt", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestDetailByTitleHandler_MissingTitle(t *testing.T) {
	stub := &stubRepo{}
	handler := entry.DetailByTitleHandler{Svc: browseUC.NewService(stub)}

	req := httptest.NewRequest(http.MethodGet, "/api/entry/by-title", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
