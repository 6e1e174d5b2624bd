package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics reported by the digest worker. Registered on the default
// registry so the worker's /metrics endpoint picks them up.
var (
	digestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_runs_total",
			Help: "Total number of digest job runs by outcome",
		},
		[]string{"status"}, // "success" or "failure"
	)

	digestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "digest_run_duration_seconds",
			Help:    "Duration of a full digest run in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		},
	)

	digestsDeliveredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digests_delivered_total",
			Help: "Total number of digest messages delivered to readers",
		},
		[]string{"status"}, // "sent" or "failed"
	)

	digestItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_items_total",
			Help: "Total number of items included in delivered digests",
		},
		[]string{"kind"}, // "article" or "newsletter"
	)

	digestLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "digest_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful digest run",
		},
	)
)

// RecordRun records the outcome and duration of a digest run.
func RecordRun(err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	} else {
		digestLastSuccess.SetToCurrentTime()
	}
	digestRunsTotal.WithLabelValues(status).Inc()
	digestDuration.Observe(d.Seconds())
}

// RecordDeliveries records how many digest messages went out and how
// many readers were skipped over errors.
func RecordDeliveries(sent, failed int) {
	if sent > 0 {
		digestsDeliveredTotal.WithLabelValues("sent").Add(float64(sent))
	}
	if failed > 0 {
		digestsDeliveredTotal.WithLabelValues("failed").Add(float64(failed))
	}
}

// RecordItems records how many items of a kind went into digests.
func RecordItems(kind string, n int) {
	if n > 0 {
		digestItemsTotal.WithLabelValues(kind).Add(float64(n))
	}
}
