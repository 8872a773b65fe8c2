package metrics

import "github.com/prometheus/client_golang/prometheus"

// WorkflowMetrics tracks the quantity-change approval pipeline.
type WorkflowMetrics struct {
	submitted *prometheus.CounterVec
	decided   *prometheus.CounterVec
	conflicts prometheus.Counter
}

// NewWorkflowMetrics registers workflow counters on the provided registerer.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	if reg == nil {
		return &WorkflowMetrics{}
	}
	submitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "update_requests_submitted_total",
		Help: "Quantity-change submissions, labeled by outcome path.",
	}, []string{"path"})
	decided := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "update_requests_decided_total",
		Help: "Finalized update requests, labeled by decision.",
	}, []string{"decision"})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "update_requests_decision_conflicts_total",
		Help: "Finalization attempts that lost the pending-status race.",
	})
	reg.MustRegister(submitted, decided, conflicts)
	return &WorkflowMetrics{
		submitted: submitted,
		decided:   decided,
		conflicts: conflicts,
	}
}

// IncSubmitted counts a submission. Path is "pending" or "direct".
func (w *WorkflowMetrics) IncSubmitted(path string) {
	if w == nil || w.submitted == nil {
		return
	}
	w.submitted.WithLabelValues(normalizeLabel(path)).Inc()
}

// IncDecided counts a finalized request by decision.
func (w *WorkflowMetrics) IncDecided(decision string) {
	if w == nil || w.decided == nil {
		return
	}
	w.decided.WithLabelValues(normalizeLabel(decision)).Inc()
}

// IncConflict counts a lost finalization race.
func (w *WorkflowMetrics) IncConflict() {
	if w == nil || w.conflicts == nil {
		return
	}
	w.conflicts.Inc()
}
