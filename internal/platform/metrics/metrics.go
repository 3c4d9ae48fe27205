package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the process-wide HTTP and session metrics.
type Metrics struct {
	RequestDuration   *prometheus.HistogramVec
	SessionsCreated   prometheus.Counter
	SessionsDestroyed prometheus.Counter
}

// New creates and registers the metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kredita_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route, method and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route", "method", "status"}),
		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "kredita_sessions_created_total",
			Help: "Total number of visitor sessions created after verification",
		}),
		SessionsDestroyed: factory.NewCounter(prometheus.CounterOpts{
			Name: "kredita_sessions_destroyed_total",
			Help: "Total number of visitor sessions destroyed on logout",
		}),
	}
}

// ObserveRequest records a finished HTTP request.
func (m *Metrics) ObserveRequest(route, method, status string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(route, method, status).Observe(d.Seconds())
	}
}

// IncrementSessionsCreated counts a new session.
func (m *Metrics) IncrementSessionsCreated() {
	if m != nil {
		m.SessionsCreated.Inc()
	}
}

// IncrementSessionsDestroyed counts a logout.
func (m *Metrics) IncrementSessionsDestroyed() {
	if m != nil {
		m.SessionsDestroyed.Inc()
	}
}
