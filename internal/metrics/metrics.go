// Package metrics registers the Prometheus collectors for the pool engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration observes HTTP request latency by route and status class.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "poolup",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// PoolsCreated counts expense requests, labeled by split type.
	PoolsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poolup",
		Name:      "pools_created_total",
		Help:      "Expense requests created.",
	}, []string{"split"})

	// SettlementTransitions counts state-machine outcomes per action.
	SettlementTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "poolup",
		Name:      "settlement_transitions_total",
		Help:      "Settlement actions applied to debt records.",
	}, []string{"action", "outcome"})
)
