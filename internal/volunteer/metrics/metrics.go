package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks volunteer record writes.
type Metrics struct {
	Imported        *prometheus.CounterVec
	Completions     *prometheus.CounterVec
	Promotions      prometheus.Counter
	CASRetries      prometheus.Counter
	PublishFailures prometheus.Counter
}

// New creates a new Metrics instance registered on the default registry.
func New() *Metrics {
	return &Metrics{
		Imported: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hmc_volunteer_import_records_total",
			Help: "Bulk import rows by result (imported, failed)",
		}, []string{"result"}),
		Completions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hmc_volunteer_unit_completions_total",
			Help: "Unit completion requests by result (recorded, already_complete, rejected)",
		}, []string{"result"}),
		Promotions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hmc_volunteer_core_promotions_total",
			Help: "Core Volunteer promotions committed",
		}),
		CASRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hmc_volunteer_training_cas_retries_total",
			Help: "Training writes retried after a version conflict",
		}),
		PublishFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hmc_volunteer_promotion_publish_failures_total",
			Help: "Promotion events that could not be published to Kafka",
		}),
	}
}

func (m *Metrics) IncrementImported(result string) {
	if m != nil {
		m.Imported.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) IncrementCompletion(result string) {
	if m != nil {
		m.Completions.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) IncrementPromotion() {
	if m != nil {
		m.Promotions.Inc()
	}
}

func (m *Metrics) IncrementCASRetry() {
	if m != nil {
		m.CASRetries.Inc()
	}
}

func (m *Metrics) IncrementPublishFailure() {
	if m != nil {
		m.PublishFailures.Inc()
	}
}
