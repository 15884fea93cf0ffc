package metrics

import (
	"errors"

	"github.com/aretha12/MoGrow/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mogrow"

// Metrics counts decisions by outcome. It satisfies the executor's Recorder.
type Metrics struct {
	decisions  *prometheus.CounterVec
	rulesFired *prometheus.CounterVec
	failures   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Completed decisions by subject, source and final label.",
		}, []string{"subject", "source", "label"}),
		rulesFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_fired_total",
			Help:      "Rule overrides by rule set and rule.",
		}, []string{"rule_set", "rule"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decision_failures_total",
			Help:      "Rejected or failed decisions by subject and reason.",
		}, []string{"subject", "reason"}),
	}
	reg.MustRegister(m.decisions, m.rulesFired, m.failures)
	return m
}

func (m *Metrics) ObserveDecision(result models.DecisionResult) {
	m.decisions.WithLabelValues(string(result.Subject), string(result.Source), result.LabelName).Inc()
	if result.Source == models.SourceRuleOverride {
		m.rulesFired.WithLabelValues(result.RuleSet, result.Rule).Inc()
	}
}

// ObserveFailure counts a rejected request. The subject comes from the
// caller, so anything but a known subject is counted as "unknown".
func (m *Metrics) ObserveFailure(subject models.Subject, err error) {
	m.failures.WithLabelValues(subjectLabel(subject), Reason(err)).Inc()
}

func subjectLabel(subject models.Subject) string {
	if len(models.FieldNames(subject)) == 0 {
		return "unknown"
	}
	return string(subject)
}

// Reason maps an executor error onto a low-cardinality label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, models.ErrRuleSetNotFound):
		return "rule_set_not_found"
	case errors.Is(err, models.ErrRuleSetMismatch):
		return "rule_set_mismatch"
	case errors.Is(err, models.ErrUnrecognizedLabel):
		return "unrecognized_label"
	case errors.Is(err, models.ErrModelUnavailable):
		return "model_unavailable"
	default:
		return "other"
	}
}
