package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Public site outcomes
const (
	OutcomeRendered = "rendered"
	OutcomeNotFound = "not_found"
	OutcomeEmpty    = "under_construction"
	OutcomeError    = "error"
)

var (
	SiteRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_requests_total",
			Help: "Total number of public site requests by outcome",
		},
		[]string{"outcome"},
	)
	RenderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "site_render_duration_seconds",
			Help:    "Duration of public page resolution and rendering in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
		},
	)
	AdminMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_mutations_total",
			Help: "Total number of admin mutations by operation and status",
		},
		[]string{"op", "status"},
	)
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenant_store_errors_total",
			Help: "Total number of tenant store failures by operation",
		},
		[]string{"op"},
	)
)

func InitMetrics() {
	for name, c := range map[string]prometheus.Collector{
		"SiteRequests":   SiteRequests,
		"RenderDuration": RenderDuration,
		"AdminMutations": AdminMutations,
		"StoreErrors":    StoreErrors,
	} {
		if err := prometheus.Register(c); err != nil {
			log.Error().Err(err).Msgf("Failed to register %s metric", name)
		}
	}
}

// RecordMutation counts one admin mutation.
func RecordMutation(op string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	AdminMutations.WithLabelValues(op, status).Inc()
}
