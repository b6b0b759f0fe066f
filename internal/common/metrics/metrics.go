// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectorJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "connector_jobs_completed_total",
			Help: "Total number of connector jobs completed, by result status",
		},
		[]string{"task_type", "status"},
	)

	ConnectorJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "connector_jobs_failed_total",
			Help: "Total number of connector jobs failed",
		},
		[]string{"task_type", "error_code"},
	)

	AgentRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agent_request_duration_seconds",
			Help:    "Round-trip duration of RAG agent HTTP calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task_type"},
	)

	ConnectorJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "connector_jobs_active",
			Help: "Number of jobs currently being processed",
		},
		[]string{"task_type"},
	)
)
