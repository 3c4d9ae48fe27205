package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for registration steps.
const (
	OutcomeRedirected = "redirected"
	OutcomeNoMatch    = "no_match"
	OutcomeSent       = "sent"
	OutcomeVerified   = "verified"
	OutcomeNotFound   = "not_found"
	OutcomeInvalid    = "invalid"
	OutcomeFailed     = "failed"
)

type Metrics struct {
	Outcomes *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Outcomes: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "kredita_registration_outcomes_total",
			Help: "Registration steps by action and outcome",
		}, []string{"action", "outcome"}),
	}
}

func (m *Metrics) IncrementOutcome(action, outcome string) {
	if m != nil {
		m.Outcomes.WithLabelValues(action, outcome).Inc()
	}
}
