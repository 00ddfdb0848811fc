package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OperationSignUp  = "signup"
	OperationConfirm = "confirm"

	OutcomeSuccess       = "success"
	OutcomeRejected      = "rejected"
	OutcomeRemoteFailure = "remote_failure"
)

// Metrics tracks registration attempts and identity provider latency.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Attempts           *prometheus.CounterVec
	RemoteCallDuration *prometheus.HistogramVec
}

// New registers the registration metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Attempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_attempts_total",
			Help: "Registration operations by outcome",
		}, []string{"operation", "outcome"}),
		RemoteCallDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signup_remote_call_duration_seconds",
			Help:    "Duration of identity provider calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
	}
}

// RecordOutcome counts one finished operation.
func (m *Metrics) RecordOutcome(operation, outcome string) {
	if m == nil {
		return
	}
	m.Attempts.WithLabelValues(operation, outcome).Inc()
}

// ObserveRemoteCall records the duration of a provider call.
// Call with time.Now() taken before the call.
func (m *Metrics) ObserveRemoteCall(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.RemoteCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
