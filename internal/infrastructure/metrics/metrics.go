package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Posting metrics
	Postings        *prometheus.CounterVec
	PostingDuration *prometheus.HistogramVec
	PostingAmount   *prometheus.HistogramVec
	PostingErrors   *prometheus.CounterVec
	ReversalMissing *prometheus.CounterVec
	VouchersIssued  *prometheus.CounterVec

	// Reconciliation metrics
	ReconcileDrift       prometheus.Gauge
	ReconcileCorrections prometheus.Counter
	ReconcileFailures    prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditEntriesCreated *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
// A nil reg registers with the default Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		// Posting metrics
		Postings: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agencyledger_postings_total",
				Help: "Total committed postings by kind and phase",
			},
			[]string{"kind", "phase"},
		),
		PostingDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agencyledger_posting_duration_seconds",
				Help:    "Duration of posting units of work",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "phase"},
		),
		PostingAmount: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agencyledger_posting_amount",
				Help:    "Posted amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"kind"},
		),
		PostingErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agencyledger_posting_errors_total",
				Help: "Total failed postings by error code",
			},
			[]string{"kind", "code"},
		),
		ReversalMissing: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agencyledger_ledger_reversal_missing_total",
				Help: "Reversals that found no ledger entries to remove",
			},
			[]string{"kind"},
		),
		VouchersIssued: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agencyledger_vouchers_issued_total",
				Help: "Voucher numbers handed out by prefix",
			},
			[]string{"prefix"},
		),

		// Reconciliation metrics
		ReconcileDrift: f.NewGauge(prometheus.GaugeOpts{
			Name: "agencyledger_reconcile_drifting_clients",
			Help: "Clients whose stored due differed from the ledger at the last check",
		}),
		ReconcileCorrections: f.NewCounter(prometheus.CounterOpts{
			Name: "agencyledger_reconcile_corrections_total",
			Help: "Total due-amount corrections applied",
		}),
		ReconcileFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "agencyledger_reconcile_failures_total",
			Help: "Total per-client reconciliation failures",
		}),

		// API metrics
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agencyledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agencyledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Redis metrics
		RedisOperations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agencyledger_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agencyledger_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agencyledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"company"},
		),

		// Audit metrics
		AuditEntriesCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agencyledger_audit_entries_total",
				Help: "Total audit entries created",
			},
			[]string{"action"},
		),
	}
}
