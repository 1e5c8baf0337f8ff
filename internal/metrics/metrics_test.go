package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(mfs) == 0 {
		t.Error("expected some metrics to be registered")
	}
}

func hasMetric(t *testing.T, reg *Registry, name string) bool {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == name {
			return true
		}
	}
	return false
}

func TestRegistry_PipelineCounters(t *testing.T) {
	reg := NewRegistry()

	reg.RecordFetch("success")
	reg.RecordBacktest("error")
	reg.RecordSimulation("success", 3)
	reg.SetActiveSessions(2)

	for _, name := range []string{
		"quant_fetches_total",
		"quant_backtests_total",
		"quant_simulations_total",
		"quant_paper_trades_executed_total",
		"quant_sessions_active",
	} {
		if !hasMetric(t, reg, name) {
			t.Errorf("expected metric %s", name)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{200, "2xx"},
		{201, "2xx"},
		{302, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.status); got != tt.expected {
			t.Errorf("statusLabel(%d) = %s, want %s", tt.status, got, tt.expected)
		}
	}
}

func TestHTTPMiddleware(t *testing.T) {
	reg := NewRegistry()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	wrapped := HTTPMiddleware(reg)(handler)

	req := httptest.NewRequest("GET", "/api/sessions", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !hasMetric(t, reg, "http_requests_total") {
		t.Error("expected http_requests_total to be recorded")
	}
	if !hasMetric(t, reg, "http_request_duration_seconds") {
		t.Error("expected http_request_duration_seconds to be recorded")
	}
}

// requestSeries counts the label series recorded for
// http_requests_total.
func requestSeries(t *testing.T, reg *Registry) int {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_total" {
			return len(mf.GetMetric())
		}
	}
	return 0
}

func TestHTTPMiddleware_PathLabelUsesRoutePattern(t *testing.T) {
	reg := NewRegistry()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions/{id}/fetch", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := HTTPMiddleware(reg)(mux)

	for _, id := range []string{
		"0a8d9c3e-1111-4a5b-9c0d-aaaaaaaaaaaa",
		"0a8d9c3e-2222-4a5b-9c0d-bbbbbbbbbbbb",
		"0a8d9c3e-3333-4a5b-9c0d-cccccccccccc",
	} {
		req := httptest.NewRequest("POST", "/api/sessions/"+id+"/fetch", nil)
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	}

	// three sessions, one route, one label series
	if got := requestSeries(t, reg); got != 1 {
		t.Errorf("expected 1 label series for 3 requests, got %d", got)
	}
}
