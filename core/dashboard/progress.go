package dashboard

// ApplyProgress returns a copy of q with its progress moved to newCurrent.
//
// newCurrent is clamped to [0, target] (a zero target collapses the range to
// [0, 0]) and the percentage is recomputed so it is never stored stale.
// Reaching the target promotes an available or in-progress quest to
// completed; completion is one-way, lowering the progress of a completed (or
// claimed) quest later never reverts its status. Claiming and expiring are
// transitions owned by the upstream source, not by this rule.
func ApplyProgress(q DashboardQuest, newCurrent int) DashboardQuest {
	target := q.Progress.Target
	if target < 0 {
		target = 0
	}

	if newCurrent < 0 {
		newCurrent = 0
	}
	if newCurrent > target {
		newCurrent = target
	}

	q.Progress.Current = newCurrent
	q.Progress.Percentage = ProgressPercentage(newCurrent, target)

	if target > 0 && newCurrent >= target {
		switch q.Status {
		case StatusAvailable, StatusInProgress:
			q.Status = StatusCompleted
		}
	}
	return q
}

// ProgressPercentage computes current/target as a percentage clamped to
// [0, 100]. A zero target yields 0 (degenerate guard).
func ProgressPercentage(current, target int) float64 {
	if target <= 0 {
		return 0
	}
	pct := float64(current) / float64(target) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
