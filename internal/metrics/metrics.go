// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kruger_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kruger_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kruger_api_active_requests",
			Help: "Requests currently being served",
		},
	)

	// Response cache
	CacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kruger_response_cache_total",
			Help: "Response cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	CachePurges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kruger_response_cache_purges_total",
			Help: "Number of times the response cache was purged after a write",
		},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kruger_rate_limited_total",
			Help: "Requests rejected by the token bucket",
		},
	)

	// Domain
	SightingsReported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kruger_sightings_reported_total",
			Help: "Sightings reported through the API, by animal",
		},
		[]string{"animal"},
	)

	ReviewsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kruger_reviews_added_total",
			Help: "Accommodation reviews submitted",
		},
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kruger_auth_attempts_total",
			Help: "Register and login attempts by outcome",
		},
		[]string{"action", "outcome"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kruger_activity_events_total",
			Help: "Activity events handed to the broker, by result",
		},
		[]string{"result"},
	)
)

// RecordAPIRequest records one served request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func RecordCacheResult(hit bool) {
	if hit {
		CacheResults.WithLabelValues("hit").Inc()
		return
	}
	CacheResults.WithLabelValues("miss").Inc()
}

func RecordAuthAttempt(action string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	AuthAttempts.WithLabelValues(action, outcome).Inc()
}

func RecordEventPublish(err error) {
	if err != nil {
		EventsPublished.WithLabelValues("error").Inc()
		return
	}
	EventsPublished.WithLabelValues("ok").Inc()
}
