package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejected    prometheus.Counter
	StoreErrors prometheus.Counter
	Degraded    prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Rejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "kredita_ratelimit_rejected_total",
			Help: "Total number of form submissions rejected by rate limiting",
		}),
		StoreErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "kredita_ratelimit_store_errors_total",
			Help: "Total number of failed rate limit store checks",
		}),
		Degraded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kredita_ratelimit_degraded",
			Help: "1 while rate limiting runs on the in-memory fallback",
		}),
	}
}

func (m *Metrics) IncrementRejected() {
	if m != nil {
		m.Rejected.Inc()
	}
}

func (m *Metrics) IncrementStoreErrors() {
	if m != nil {
		m.StoreErrors.Inc()
	}
}

func (m *Metrics) SetDegraded(degraded bool) {
	if m == nil {
		return
	}
	if degraded {
		m.Degraded.Set(1)
		return
	}
	m.Degraded.Set(0)
}
