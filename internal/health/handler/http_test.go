package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockPinger implements Pinger for tests.
type mockPinger struct {
	pingErr error
}

func (m *mockPinger) PingContext(context.Context) error {
	return m.pingErr
}

func serve(t *testing.T, h *Handler) (int, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec.Code, resp
}

func TestHealth_NilPinger(t *testing.T) {
	code, resp := serve(t, NewHandler(nil, nil))
	if code != http.StatusOK {
		t.Errorf("code = %d, want 200", code)
	}
	if resp.Status != StatusServing {
		t.Errorf("status = %q, want SERVING", resp.Status)
	}
	if _, ok := resp.Checks["database"]; ok {
		t.Error("database check should be skipped without a pinger")
	}
}

func TestHealth_PingerSuccess(t *testing.T) {
	code, resp := serve(t, NewHandler(&mockPinger{}, func() int { return 2 }))
	if code != http.StatusOK || resp.Status != StatusServing {
		t.Errorf("got %d %q, want 200 SERVING", code, resp.Status)
	}
	if resp.Checks["database"] != "ok" {
		t.Errorf("database = %q, want ok", resp.Checks["database"])
	}
	if resp.Checks["bindings"] != "2" {
		t.Errorf("bindings = %q, want 2", resp.Checks["bindings"])
	}
}

func TestHealth_PingerFailure(t *testing.T) {
	code, resp := serve(t, NewHandler(&mockPinger{pingErr: errors.New("connection refused")}, nil))
	if code != http.StatusServiceUnavailable {
		t.Errorf("code = %d, want 503", code)
	}
	if resp.Status != StatusNotServing {
		t.Errorf("status = %q, want NOT_SERVING", resp.Status)
	}
	if resp.Checks["database"] != "connection refused" {
		t.Errorf("database = %q", resp.Checks["database"])
	}
}
