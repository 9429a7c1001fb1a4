// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirper_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// SignupsTotal counts signup attempts by result.
	SignupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirper_signups_total",
		Help: "Total number of signup attempts by result",
	}, []string{"result"})

	// MessagesCreated counts messages persisted to the store.
	MessagesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirper_messages_created_total",
		Help: "Total number of messages created",
	})

	// LikeToggles counts like toggles by outcome.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirper_like_toggles_total",
		Help: "Total number of like toggles by outcome",
	}, []string{"outcome"})

	// FeedBuildLatency records home-feed construction latency.
	FeedBuildLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chirper_feed_build_latency_seconds",
		Help:    "Home feed construction latency in seconds",
		Buckets: prometheus.DefBuckets,
	})
)
