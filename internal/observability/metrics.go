// Package observability exposes Prometheus metrics for the backend's
// domain operations. HTTP-level metrics come from the fiberprometheus
// middleware wired in the server package.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScansRecorded counts recorded scans by waste type.
	ScansRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ecored_scans_recorded_total",
		Help: "Total number of recorded scans by waste type",
	}, []string{"waste_type"})

	// PointsAwarded counts points granted by source (scan, education).
	PointsAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ecored_points_awarded_total",
		Help: "Total points awarded by source",
	}, []string{"source"})

	// RegistrationsTotal counts created EcoTrama accounts.
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecored_registrations_total",
		Help: "Total number of registered EcoTrama accounts",
	})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ecored_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
