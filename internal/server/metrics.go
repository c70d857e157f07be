package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the server's Prometheus instruments.
type Metrics struct {
	Evaluations        *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec
	ProblemBuilds      *prometheus.CounterVec
	CachedProblems     prometheus.Gauge
}

// NewMetrics registers the server metrics on the given registerer; pass
// prometheus.DefaultRegisterer in the server binary and a fresh
// registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "benchmark_evaluations_total",
			Help: "Number of fitness evaluations served, by suite and problem.",
		}, []string{"suite", "problem"}),
		EvaluationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "benchmark_evaluation_duration_seconds",
			Help:    "Per-point fitness evaluation latency, by suite.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"suite"}),
		ProblemBuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "benchmark_problem_builds_total",
			Help: "Number of problem instances constructed, by suite.",
		}, []string{"suite"}),
		CachedProblems: factory.NewGauge(prometheus.GaugeOpts{
			Name: "benchmark_cached_problems",
			Help: "Problem instances currently held in the server cache.",
		}),
	}
}
