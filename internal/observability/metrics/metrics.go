// Package metrics exposes application-level prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts verification activity by outcome.
type Metrics struct {
	codesIssued    prometheus.Counter
	verifyOutcomes *prometheus.CounterVec
}

// New registers the application instruments on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		codesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "otomarket",
			Subsystem: "verification",
			Name:      "codes_issued_total",
			Help:      "Verification codes issued, including reissues.",
		}),
		verifyOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "otomarket",
			Subsystem: "verification",
			Name:      "verify_outcomes_total",
			Help:      "Verification attempts by outcome.",
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.codesIssued, m.verifyOutcomes)
	}
	return m
}

func (m *Metrics) CodeIssued() {
	if m == nil {
		return
	}
	m.codesIssued.Inc()
}

func (m *Metrics) VerifyOutcome(outcome string) {
	if m == nil {
		return
	}
	m.verifyOutcomes.WithLabelValues(outcome).Inc()
}
