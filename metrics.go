package cpfuture

import "sync/atomic"

// SchedulerMetrics tracks lightweight atomic counters of continuation
// activity per ExecutionPolicy, exposed via Snapshot. It reports
// throughput/outcome counts only; no latency distributions.
type SchedulerMetrics struct {
	submitted [6]atomic.Int64
	completed [6]atomic.Int64
}

// PolicySnapshot is one ExecutionPolicy's counters at the time of Snapshot.
type PolicySnapshot struct {
	Policy    ExecutionPolicy
	Submitted int64
	Completed int64
}

// Snapshot is a point-in-time read of a SchedulerMetrics.
type Snapshot struct {
	Policies []PolicySnapshot
}

func (m *SchedulerMetrics) recordSubmit(policy ExecutionPolicy) {
	if m == nil {
		return
	}
	m.submitted[policy].Add(1)
}

func (m *SchedulerMetrics) recordComplete(policy ExecutionPolicy) {
	if m == nil {
		return
	}
	m.completed[policy].Add(1)
}

// Snapshot returns the current counter values.
func (m *SchedulerMetrics) Snapshot() Snapshot {
	policies := make([]PolicySnapshot, 0, len(m.submitted))
	for i := range m.submitted {
		policies = append(policies, PolicySnapshot{
			Policy:    ExecutionPolicy(i),
			Submitted: m.submitted[i].Load(),
			Completed: m.completed[i].Load(),
		})
	}
	return Snapshot{Policies: policies}
}
