package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks registration verdicts.
type Metrics struct {
	Validations        *prometheus.CounterVec
	BlockingIssues     *prometheus.CounterVec
	ValidationDuration prometheus.Histogram
}

// New creates a new Metrics instance registered on the default registry.
func New() *Metrics {
	return &Metrics{
		Validations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hmc_registration_validations_total",
			Help: "Registration validations by verdict (allowed, denied)",
		}, []string{"verdict"}),
		BlockingIssues: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hmc_registration_blocking_issues_total",
			Help: "Blocking issues reported, by issue code",
		}, []string{"code"}),
		ValidationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "hmc_registration_validation_duration_seconds",
			Help:    "Time to load a profile and validate a registration",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}),
	}
}

func (m *Metrics) ObserveVerdict(allowed bool, blockingCodes []string, elapsed time.Duration) {
	if m == nil {
		return
	}
	verdict := "denied"
	if allowed {
		verdict = "allowed"
	}
	m.Validations.WithLabelValues(verdict).Inc()
	for _, code := range blockingCodes {
		m.BlockingIssues.WithLabelValues(code).Inc()
	}
	m.ValidationDuration.Observe(elapsed.Seconds())
}
