// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GuardDecisions counts access-control outcomes.
	// Labels:
	//   - level: "authenticated", "admin"
	//   - outcome: "allowed", "unauthenticated", "forbidden"
	GuardDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecotrack_guard_decisions_total",
			Help: "Access-control decisions by required level and outcome",
		},
		[]string{"level", "outcome"},
	)

	// IngestionRuns counts ingestion runs.
	// Labels:
	//   - feed: "open-meteo", "csv"
	//   - outcome: "success", "failure", "skipped"
	IngestionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecotrack_ingestion_runs_total",
			Help: "Total number of ingestion runs",
		},
		[]string{"feed", "outcome"},
	)

	// IngestedIndicators counts indicators committed by ingestion.
	IngestedIndicators = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecotrack_ingested_indicators_total",
			Help: "Indicators inserted by ingestion runs",
		},
		[]string{"feed"},
	)

	// WeatherFetchDuration measures calls to the weather provider.
	WeatherFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecotrack_weather_fetch_duration_seconds",
			Help:    "Duration of weather provider requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)

	// StatsQueries counts aggregation queries.
	// Labels:
	//   - kind: "average", "timeseries"
	//   - outcome: "ok", "no_data", "error"
	StatsQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecotrack_stats_queries_total",
			Help: "Aggregation queries by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)
