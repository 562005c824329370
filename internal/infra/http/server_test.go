package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, _ := io.ReadAll(rec.Result().Body)
	return rec.Code, string(body)
}

func TestLiveness(t *testing.T) {
	s := New(":0", nil)
	if code, body := get(t, s.Handler(), "/"); code != http.StatusOK || body != "Bot is running" {
		t.Fatalf("/ = %d %q", code, body)
	}
	if code, body := get(t, s.Handler(), "/health"); code != http.StatusOK || body != "OK" {
		t.Fatalf("/health = %d %q", code, body)
	}
	if code, _ := get(t, s.Handler(), "/metrics"); code != http.StatusNotFound {
		t.Fatalf("/metrics without registry = %d, want 404", code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "x"})
	reg.MustRegister(c)
	c.Inc()

	s := New(":0", reg)
	code, body := get(t, s.Handler(), "/metrics")
	if code != http.StatusOK || !strings.Contains(body, "probe_total 1") {
		t.Fatalf("/metrics = %d %q", code, body)
	}
}
