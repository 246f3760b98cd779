package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	signupTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "registry",
		Name:      "signups_total",
		Help:      "Signup attempts partitioned by outcome.",
	}, []string{"outcome"})
	unregisterTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "registry",
		Name:      "unregistrations_total",
		Help:      "Unregister attempts partitioned by outcome.",
	}, []string{"outcome"})
	enrollmentGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "signup_service",
		Subsystem: "registry",
		Name:      "enrollment",
		Help:      "Current roster size per activity.",
	}, []string{"activity"})
)

// Outcome labels shared by the counters above.
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeNotFound = "not_found"
)

func init() {
	prometheus.MustRegister(signupTotal, unregisterTotal, enrollmentGauge)
}

// RecordSignup counts one signup attempt.
func RecordSignup(outcome string) {
	signupTotal.WithLabelValues(outcome).Inc()
}

// RecordUnregister counts one unregister attempt.
func RecordUnregister(outcome string) {
	unregisterTotal.WithLabelValues(outcome).Inc()
}

// SetEnrollment updates the roster-size gauge for an activity.
func SetEnrollment(activity string, size int) {
	enrollmentGauge.WithLabelValues(activity).Set(float64(size))
}
