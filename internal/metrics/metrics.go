// Package metrics defines the prometheus collectors for the auth service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HashBuckets covers bcrypt costs from test (4) to well above the default (12).
var HashBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

var (
	// GateDecisionsTotal counts request gate outcomes.
	GateDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authkeeper_gate_decisions_total",
			Help: "Request gate decisions",
		},
		[]string{"outcome"},
	)

	// AccountOperationsTotal counts register, login and account lookups by result.
	AccountOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authkeeper_account_operations_total",
			Help: "Account operations",
		},
		[]string{"operation", "result"},
	)

	// PasswordHashSeconds records bcrypt hash and verify latency.
	PasswordHashSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "authkeeper_password_hash_seconds",
			Help:    "Password hash latency",
			Buckets: HashBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(
		GateDecisionsTotal,
		AccountOperationsTotal,
		PasswordHashSeconds,
	)
}

// ObserveGateDecision records one gate outcome.
func ObserveGateDecision(outcome string) {
	GateDecisionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveAccountOperation records one account operation result.
func ObserveAccountOperation(operation, result string) {
	AccountOperationsTotal.WithLabelValues(operation, result).Inc()
}

// ObservePasswordHash records the duration of one bcrypt call.
func ObservePasswordHash(operation string, elapsed time.Duration) {
	PasswordHashSeconds.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Handler serves the default registry in the prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
