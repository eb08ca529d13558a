// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the talentgate API.
package observability

import "github.com/prometheus/client_golang/prometheus"

// APIBuckets defines histogram buckets suited for CRUD-plus-bcrypt request
// latencies, ranging from 1ms to 5s. Login and register sit in the tens of
// milliseconds because of the password hash.
var APIBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

var (
	// RequestsTotal counts all HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talentgate_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "talentgate_request_duration_seconds",
			Help:    "Request duration",
			Buckets: APIBuckets,
		},
		[]string{"method"},
	)

	// LoginsTotal counts login attempts by outcome ("success", "failure").
	// The failure outcome is one bucket on purpose: unknown email and
	// wrong password are not separated anywhere, metrics included.
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talentgate_logins_total",
			Help: "Login attempts",
		},
		[]string{"outcome"},
	)

	// RegistrationsTotal counts successful tenant registrations.
	RegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "talentgate_registrations_total",
			Help: "Successful tenant registrations",
		},
	)

	// AuthRejectedTotal counts requests rejected by the auth gate, by
	// reason ("missing_credentials", "invalid_token").
	AuthRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talentgate_auth_rejected_total",
			Help: "Requests rejected by the auth gate",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		LoginsTotal,
		RegistrationsTotal,
		AuthRejectedTotal,
	)
}
