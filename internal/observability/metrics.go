// Package observability holds application-level metrics and tracing setup.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts successful account registrations.
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pagecraft_registrations_total",
		Help: "Total number of successful user registrations",
	})

	// LoginsTotal counts login attempts by outcome (success, failure).
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pagecraft_logins_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// ProjectsCreatedTotal counts projects created.
	ProjectsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pagecraft_projects_created_total",
		Help: "Total number of projects created",
	})

	// VersionsCreatedTotal counts project version snapshots created.
	VersionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pagecraft_versions_created_total",
		Help: "Total number of project version snapshots created",
	})

	// RedisErrors counts Redis operation failures, labeled by operation.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pagecraft_redis_errors_total",
		Help: "Total number of Redis errors by operation",
	}, []string{"operation"})
)
