package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.Postings == nil || m.HTTPRequests == nil || m.ReversalMissing == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.ReconcileCorrections.Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestNewIsolatedRegistries(t *testing.T) {
	a := New(prometheus.NewRegistry())
	b := New(prometheus.NewRegistry())

	a.Postings.WithLabelValues("expense", "create").Inc()

	if got := testutil.ToFloat64(a.Postings.WithLabelValues("expense", "create")); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(b.Postings.WithLabelValues("expense", "create")); got != 0 {
		t.Fatalf("expected second registry untouched, got %v", got)
	}
}
