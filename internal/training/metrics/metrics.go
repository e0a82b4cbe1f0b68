package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks data quality and derivation outcomes of the training engine.
type Metrics struct {
	UnknownUnits  prometheus.Counter
	RetiredUnits  prometheus.Counter
	StageComputed *prometheus.CounterVec
}

// New creates a new Metrics instance registered on the default registry.
func New() *Metrics {
	return &Metrics{
		UnknownUnits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hmc_training_unknown_units_total",
			Help: "Completed unit ids found in records that match neither a catalog unit nor an alias",
		}),
		RetiredUnits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hmc_training_retired_units_resolved_total",
			Help: "Completed unit ids resolved through the legacy alias table",
		}),
		StageComputed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hmc_training_stage_computed_total",
			Help: "Universal clearance stages derived, by stage",
		}, []string{"stage"}),
	}
}

func (m *Metrics) IncrementUnknownUnit() {
	if m != nil {
		m.UnknownUnits.Inc()
	}
}

func (m *Metrics) IncrementRetiredUnit() {
	if m != nil {
		m.RetiredUnits.Inc()
	}
}

// IncrementStage records one derived stage.
func (m *Metrics) IncrementStage(stage string) {
	if m != nil {
		m.StageComputed.WithLabelValues(stage).Inc()
	}
}
