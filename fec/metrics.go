package fec

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts decode outcomes. A nil *Metrics is valid and records
// nothing, so codecs can call it unconditionally.
type Metrics struct {
	rsDecodes      *prometheus.CounterVec
	rsSymbolsFixed prometheus.Counter
	nscDecodes     *prometheus.CounterVec
	nscOpenEnded   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg (skipped when
// reg is nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rsDecodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fec",
			Subsystem: "rs",
			Name:      "decodes_total",
			Help:      "Reed-Solomon decode calls by outcome.",
		}, []string{"status"}),
		rsSymbolsFixed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fec",
			Subsystem: "rs",
			Name:      "corrected_symbols_total",
			Help:      "Symbols rewritten by the Reed-Solomon decoder.",
		}),
		nscDecodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fec",
			Subsystem: "nsc",
			Name:      "decodes_total",
			Help:      "Viterbi decode calls by decision mode.",
		}, []string{"mode"}),
		nscOpenEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fec",
			Subsystem: "nsc",
			Name:      "unterminated_total",
			Help:      "Viterbi decodes whose best final state was not the start state.",
		}, []string{"mode"}),
	}
	if reg != nil {
		reg.MustRegister(m.rsDecodes, m.rsSymbolsFixed, m.nscDecodes, m.nscOpenEnded)
	}
	return m
}

func (m *Metrics) observeRS(res *RSResult) {
	if m == nil {
		return
	}
	m.rsDecodes.WithLabelValues(res.Status.String()).Inc()
	if res.ErrorCount > 0 && res.ErrorCount <= len(res.Syndromes)/2 {
		m.rsSymbolsFixed.Add(float64(res.ErrorCount))
	}
}

func (m *Metrics) observeNSC(mode string, final State) {
	if m == nil {
		return
	}
	m.nscDecodes.WithLabelValues(mode).Inc()
	if final != StateA {
		m.nscOpenEnded.WithLabelValues(mode).Inc()
	}
}
