// Package slo tracks service level objective compliance for the API.
//
// Handlers feed request outcomes into a window via Observe; a background
// reporter periodically folds the window into Prometheus gauges so
// dashboards and alerts can compare current behavior against the targets.
package slo

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Targets for the API as a whole.
const (
	// AvailabilitySLO is the target uptime percentage (99.9%).
	AvailabilitySLO = 99.9

	// ErrorRateSLO is the maximum acceptable 5xx ratio (0.1%).
	ErrorRateSLO = 0.001
)

var (
	// SLOAvailability tracks the availability ratio over the last window,
	// calculated as (total_requests - 5xx_errors) / total_requests.
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_availability_ratio",
			Help: "Availability ratio over the last reporting window (0-1), target: 0.999",
		},
	)

	// SLOErrorRate tracks the 5xx ratio over the last window.
	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_error_rate_ratio",
			Help: "Error rate ratio over the last reporting window (0-1), target: 0.001",
		},
	)
)

var (
	totalRequests atomic.Int64
	errorRequests atomic.Int64
)

// Observe records one finished request. Call it from the HTTP metrics
// middleware with the response status code.
func Observe(status int) {
	totalRequests.Add(1)
	if status >= 500 {
		errorRequests.Add(1)
	}
}

// StartReporter periodically folds the observation window into the SLO
// gauges until the context is cancelled. A window with no requests leaves
// the gauges untouched.
func StartReporter(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report()
		}
	}
}

func report() {
	total := totalRequests.Swap(0)
	errors := errorRequests.Swap(0)
	if total == 0 {
		return
	}

	errorRate := float64(errors) / float64(total)
	SLOErrorRate.Set(errorRate)
	SLOAvailability.Set(1 - errorRate)
}
