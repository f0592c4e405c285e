package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scholarship_provider_requests_total",
			Help: "Total number of outbound provider requests",
		},
		[]string{"provider", "status"},
	)

	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scholarship_provider_duration_seconds",
			Help:    "Duration of outbound provider requests in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"provider"},
	)

	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scholarship_search_requests_total",
			Help: "Total number of /search calls by request variant",
		},
		[]string{"variant"},
	)

	SearchOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scholarship_search_outcomes_total",
			Help: "Total number of /search calls by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordProviderCall records one outbound call. A zero statusCode means the
// request failed before a response was received.
func RecordProviderCall(provider string, statusCode int, duration time.Duration) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	ProviderRequestsTotal.WithLabelValues(provider, status).Inc()
	ProviderDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordRequest counts a /search call as minimal (no filters) or extended.
func RecordRequest(filtered bool) {
	variant := "minimal"
	if filtered {
		variant = "extended"
	}
	SearchRequestsTotal.WithLabelValues(variant).Inc()
}

func RecordOutcome(outcome string) {
	SearchOutcomesTotal.WithLabelValues(outcome).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
