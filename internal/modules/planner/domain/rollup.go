package domain

import "math"

// Progress is round(100*completed/estimated), 0 without an estimate. Over-logged
// time is clamped to 100 so the percentage always stays in [0,100].
func Progress(completed, estimated float64) int {
	if estimated <= 0 {
		return 0
	}
	pct := int(math.Round(100 * completed / estimated))
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// RollupTarget recomputes the target totals from its tasks. Totals start from
// zero so repeated rollups never double count.
func RollupTarget(target Target) Target {
	target.TotalEstimated = 0
	target.TotalCompleted = 0
	for _, task := range target.Tasks {
		if !task.HasEstimate() {
			continue
		}
		target.TotalEstimated += task.EstimatedTime
		if task.Completed {
			target.TotalCompleted += task.CompletedTime
		}
	}
	target.Progress = Progress(target.TotalCompleted, target.TotalEstimated)
	return target
}

// RollupDomain rolls up every target and aggregates them into the domain.
// TotalPending is not clamped: over-logged time makes it negative.
func RollupDomain(d Domain) Domain {
	d.TotalEstimated = 0
	d.TotalCompleted = 0
	targets := make([]Target, 0, len(d.Targets))
	for _, target := range d.Targets {
		rolled := RollupTarget(target)
		d.TotalEstimated += rolled.TotalEstimated
		d.TotalCompleted += rolled.TotalCompleted
		targets = append(targets, rolled)
	}
	d.Targets = targets
	d.TotalPending = d.TotalEstimated - d.TotalCompleted
	d.Progress = Progress(d.TotalCompleted, d.TotalEstimated)
	return d
}

// FindTarget returns the target holding targetID.
func (d Domain) FindTarget(targetID string) (Target, bool) {
	for _, target := range d.Targets {
		if target.ID == targetID {
			return target, true
		}
	}
	return Target{}, false
}
