package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// ROIComputationsTotal counts engine invocations by calling surface.
	ROIComputationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "solarroi",
		Subsystem: "engine",
		Name:      "computations_total",
		Help:      "Total number of ROI engine computations, labeled by the calling endpoint.",
	}, []string{"caller"})

	// RoofAnalysesTotal counts roof polygon analyses by outcome.
	RoofAnalysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "solarroi",
		Subsystem: "analysis",
		Name:      "roof_analyses_total",
		Help:      "Total number of roof polygon analyses, labeled by result.",
	}, []string{"result"})

	// InsightRequestsTotal counts AI-insight requests by how they completed.
	InsightRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "solarroi",
		Subsystem: "insights",
		Name:      "requests_total",
		Help:      "Total number of AI insight requests, labeled by result (ok, fallback, invalid).",
	}, []string{"result"})

	// GeocodeRequestsTotal counts geocoding lookups by direction and result.
	GeocodeRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "solarroi",
		Subsystem: "geocode",
		Name:      "requests_total",
		Help:      "Total number of geocode lookups, labeled by direction (search, reverse) and result.",
	}, []string{"direction", "result"})

	// ActiveSessions is the number of live analyze→results hand-offs.
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "solarroi",
		Subsystem: "session",
		Name:      "active",
		Help:      "Current number of live session hand-offs.",
	})

	// RequestDurationSeconds is end-to-end handler time.
	RequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "solarroi",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "End-to-end handler latency.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"endpoint"})
)

// Register registers all metrics with the default registry. Safe to call more
// than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ROIComputationsTotal,
			RoofAnalysesTotal,
			InsightRequestsTotal,
			GeocodeRequestsTotal,
			ActiveSessions,
			RequestDurationSeconds,
		)
	})
}
