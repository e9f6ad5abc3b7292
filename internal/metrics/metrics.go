package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "exercise_tracker"

var (
	UsersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "users_created_total", Help: "Number of users created."},
	)
	ExercisesLogged = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "exercises_logged_total", Help: "Number of exercises appended to the log."},
	)
	LogRequests = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "log_requests_total", Help: "Number of exercise log reads served."},
	)
	LogExports = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "log_exports_total", Help: "Number of log exports by outcome."},
		[]string{"outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

// RegisterCollectors registers every collector of the service with reg.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(UsersCreated, ExercisesLogged, LogRequests, LogExports, RateLimitAllowed, RateLimitRejected)
}
