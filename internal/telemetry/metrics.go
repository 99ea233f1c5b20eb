package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "saveslots"

// Write-back targets.
const (
	TargetRemote = "remote"
	TargetLocal  = "local"
)

// Metrics tracks registry persistence and initialization. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	writes          *prometheus.CounterVec
	initializations *prometheus.CounterVec
	slots           prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "writes_total",
			Help:      "Preserved session write-backs by target and result.",
		}, []string{"target", "result"}),
		initializations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "initializations_total",
			Help:      "Registry initializations by source.",
		}, []string{"source"}),
		slots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slots",
			Help:      "Number of preserved sessions held by the registry.",
		}),
	}

	if reg == nil {
		return m, nil
	}
	for _, collector := range []prometheus.Collector{m.writes, m.initializations, m.slots} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) ObserveWrite(target string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.writes.WithLabelValues(target, result).Inc()
}

// ObserveInitialization records which path seeded the registry: "remote",
// "repair", "bootstrap" or "empty".
func (m *Metrics) ObserveInitialization(source string) {
	if m == nil {
		return
	}
	m.initializations.WithLabelValues(source).Inc()
}

func (m *Metrics) SetSlots(count int) {
	if m == nil {
		return
	}
	m.slots.Set(float64(count))
}
