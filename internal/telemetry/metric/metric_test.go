package metric

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistryMetricsAreRegistered(t *testing.T) {
	r := NewRegistry()

	r.CommandsTotal.WithLabelValues("GET").Inc()
	r.CommandErrorsTotal.WithLabelValues("LPUSH", "WRONGTYPE").Inc()
	r.CommandDuration.WithLabelValues("GET").Observe(0.01)
	r.ConnectedClients.Set(3)
	r.SubscriptionsActive.Set(2)

	if got := testutil.ToFloat64(r.CommandsTotal.WithLabelValues("GET")); got != 1 {
		t.Fatalf("CommandsTotal[GET] = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.ConnectedClients); got != 3 {
		t.Fatalf("ConnectedClients = %v, want 3", got)
	}
}

func TestHandlerServesExpositionFormat(t *testing.T) {
	r := NewRegistry()
	r.CommandsTotal.WithLabelValues("PING").Inc()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "ferrodb_commands_total") {
		t.Fatalf("body missing ferrodb_commands_total metric:\n%s", body)
	}
}

func TestCollectorReportsStats(t *testing.T) {
	r := NewRegistry()
	c := NewCollector(func() Stats {
		return Stats{KeyCount: 42, AOFSizeBytes: 1024}
	})
	r.RegisterCollector(c)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "ferrodb_keyspace_keys 42") {
		t.Fatalf("body missing keyspace key count:\n%s", body)
	}
	if !strings.Contains(body, "ferrodb_aof_size_bytes 1024") {
		t.Fatalf("body missing aof size:\n%s", body)
	}
}
