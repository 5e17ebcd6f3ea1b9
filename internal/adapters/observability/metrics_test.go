package observability_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"travelfares/internal/adapters/observability"
)

func TestMetricsExposition(t *testing.T) {
	reg := observability.InitRegistry()

	observability.ObserveHTTP("/v1/orders/{id}/flights/search", "POST", 200, 120*time.Millisecond)
	observability.ObserveExternal("travelport", "catalogproductofferings", 200, 800*time.Millisecond)
	observability.ObserveStore("put")
	observability.ObserveStore("stale")

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	observability.MetricsHandler(reg).ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("metrics status %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	out := string(body)

	for _, want := range []string{
		"fares_http_requests_total",
		"fares_http_request_duration_seconds",
		"fares_external_requests_total",
		"fares_result_store_events_total",
		`event="stale"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}
