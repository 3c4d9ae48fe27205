package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Call outcomes. A soft failure is a well-formed rejection from the core
// service; a transport failure means no usable answer came back.
const (
	OutcomeSuccess   = "success"
	OutcomeSoftFail  = "soft_failure"
	OutcomeTransport = "transport_error"
)

type Metrics struct {
	Calls        *prometheus.CounterVec
	CallDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Calls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kredita_coreapi_calls_total",
			Help: "Total number of core service calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		CallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kredita_coreapi_call_duration_seconds",
			Help:    "Latency of core service calls by operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) ObserveDuration(operation string, d time.Duration) {
	if m != nil {
		m.CallDuration.WithLabelValues(operation).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementOutcome(operation, outcome string) {
	if m != nil {
		m.Calls.WithLabelValues(operation, outcome).Inc()
	}
}
