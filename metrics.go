package componentbuilder

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const prometheusLabelType = "type"

// Metrics of builders, a nil *Metrics records nothing
type Metrics struct {
	buildDuration prometheus.Summary
	elements      *prometheus.CounterVec
	dropped       prometheus.Counter
	buildErrors   prometheus.Counter
}

// NewMetrics creates and registers the builder metrics
func NewMetrics(reg prometheus.Registerer) (m *Metrics, err error) {
	m = &Metrics{
		buildDuration: prometheus.NewSummary(
			prometheus.SummaryOpts{
				Name:       "componentbuilder_build_duration_seconds",
				Help:       "duration of a build including parsing the markup",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
		),
		elements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "componentbuilder_elements_total",
				Help: "number of created elements by element type",
			},
			[]string{prometheusLabelType},
		),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "componentbuilder_nodes_dropped_total",
			Help: "number of nodes dropped by ignore rules",
		}),
		buildErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "componentbuilder_build_errors_total",
			Help: "number of failed builds",
		}),
	}
	for _, c := range []prometheus.Collector{
		m.buildDuration,
		m.elements,
		m.dropped,
		m.buildErrors,
	} {
		if errRegister := reg.Register(c); errRegister != nil {
			return nil, errRegister
		}
	}
	return m, nil
}

func (m *Metrics) observeBuild(start time.Time, err error) {
	if m == nil {
		return
	}
	m.buildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.buildErrors.Inc()
	}
}

func (m *Metrics) countElement(elementType string) {
	if m == nil {
		return
	}
	m.elements.WithLabelValues(elementType).Inc()
}

func (m *Metrics) countDropped() {
	if m == nil {
		return
	}
	m.dropped.Inc()
}
