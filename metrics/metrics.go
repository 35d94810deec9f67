// Package metrics exposes Prometheus collectors for the tournament engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EditionTransitionsTotal counts edition status changes by target status.
	EditionTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sinuca",
			Subsystem: "edition",
			Name:      "transitions_total",
			Help:      "Total number of edition status transitions",
		},
		[]string{"to"},
	)

	BracketsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sinuca",
			Subsystem: "bracket",
			Name:      "generated_total",
			Help:      "Total number of generated brackets by opening phase",
		},
		[]string{"phase"},
	)

	MatchesDecidedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sinuca",
			Subsystem: "match",
			Name:      "decided_total",
			Help:      "Total number of registered match winners by phase",
		},
		[]string{"phase"},
	)

	RoundsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sinuca",
			Subsystem: "match",
			Name:      "rounds_generated_total",
			Help:      "Total number of rounds created after a phase completed",
		},
		[]string{"phase"},
	)

	ResultCorrectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sinuca",
			Subsystem: "match",
			Name:      "result_corrections_total",
			Help:      "Total number of applied result corrections",
		},
	)

	// SettlementsTotal tracks settlement attempts by outcome (settled, already_finalized, failed).
	SettlementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sinuca",
			Subsystem: "settlement",
			Name:      "attempts_total",
			Help:      "Total number of settlement attempts by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sinuca",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sinuca",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
