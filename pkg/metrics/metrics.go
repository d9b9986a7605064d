package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sources a recap can be served from.
const (
	SourceCache      = "cache"
	SourceDatabase   = "database"
	SourceGenerated  = "generated"
	SourceInProgress = "in_progress"
	SourceError      = "error"
)

// Metrics of the recap pipeline.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	matchesFetched    *prometheus.CounterVec
	matchesNormalized *prometheus.CounterVec
	recapRequests     *prometheus.CounterVec
	recapDuration     *prometheus.HistogramVec
}

// New registers the metrics on the registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		matchesFetched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riftrewind_matches_fetched_total",
				Help: "Match payloads requested from the Riot API.",
			},
			[]string{"status"},
		),
		matchesNormalized: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riftrewind_matches_normalized_total",
				Help: "Match payloads turned into performance records.",
			},
			[]string{"result"},
		),
		recapRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riftrewind_recap_requests_total",
				Help: "Recap requests by where they were served from.",
			},
			[]string{"source"},
		),
		recapDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riftrewind_recap_duration_seconds",
				Help:    "Time to serve a recap.",
				Buckets: []float64{0.01, 0.05, 0.25, 1, 5, 15, 30, 60, 120, 300},
			},
			[]string{"source"},
		),
	}
}

// MatchFetched counts a match request.
func (m *Metrics) MatchFetched(ok bool) {
	if m == nil {
		return
	}
	m.matchesFetched.WithLabelValues(status(ok, "ok", "failed")).Inc()
}

// MatchNormalized counts a normalized or skipped payload.
func (m *Metrics) MatchNormalized(ok bool) {
	if m == nil {
		return
	}
	m.matchesNormalized.WithLabelValues(status(ok, "ok", "skipped")).Inc()
}

// RecapServed records a recap request.
func (m *Metrics) RecapServed(source string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.recapRequests.WithLabelValues(source).Inc()
	m.recapDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

func status(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
