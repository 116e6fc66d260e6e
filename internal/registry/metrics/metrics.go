package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry module. All methods are
// nil-safe so tests can pass a nil *Metrics.
type Metrics struct {
	ReportsCreated   *prometheus.CounterVec
	PotentialMatches prometheus.Counter
	ClaimsInitiated  prometheus.Counter
	ItemsReturned    prometheus.Counter
	ScanLatency      prometheus.Histogram
}

// New creates and registers all registry metrics.
func New() *Metrics {
	return &Metrics{
		ReportsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lostfound_reports_created_total",
			Help: "Total reports created by kind",
		}, []string{"kind"}),

		PotentialMatches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_potential_matches_total",
			Help: "Total potential match events emitted by the scan",
		}),

		ClaimsInitiated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_claims_initiated_total",
			Help: "Total successful claim initiations",
		}),

		ItemsReturned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lostfound_items_returned_total",
			Help: "Total confirmed handovers",
		}),

		ScanLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lostfound_scan_duration_seconds",
			Help:    "Duration of full match scans",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncReportsCreated records a created report by kind.
func (m *Metrics) IncReportsCreated(kind string) {
	if m != nil {
		m.ReportsCreated.WithLabelValues(kind).Inc()
	}
}

// IncPotentialMatches records one emitted potential match.
func (m *Metrics) IncPotentialMatches() {
	if m != nil {
		m.PotentialMatches.Inc()
	}
}

// IncClaimsInitiated records one successful claim initiation.
func (m *Metrics) IncClaimsInitiated() {
	if m != nil {
		m.ClaimsInitiated.Inc()
	}
}

// IncItemsReturned records one confirmed handover.
func (m *Metrics) IncItemsReturned() {
	if m != nil {
		m.ItemsReturned.Inc()
	}
}

// ObserveScanLatency records the duration of a full match scan.
func (m *Metrics) ObserveScanLatency(d time.Duration) {
	if m != nil {
		m.ScanLatency.Observe(d.Seconds())
	}
}
