package dashboard

import (
	"testing"
)

func TestApplyProgress(t *testing.T) {
	quest := func(status QuestStatus, current, target int) DashboardQuest {
		return DashboardQuest{
			ID:     "q1",
			Title:  "Solve 5 equations",
			Type:   QuestDaily,
			Status: status,
			Progress: QuestProgress{
				Current:    current,
				Target:     target,
				Percentage: ProgressPercentage(current, target),
			},
		}
	}

	tests := []struct {
		name       string
		quest      DashboardQuest
		newCurrent int
		wantCur    int
		wantPct    float64
		wantStatus QuestStatus
	}{
		{name: "negative clamped to zero", quest: quest(StatusInProgress, 2, 5), newCurrent: -3, wantCur: 0, wantPct: 0, wantStatus: StatusInProgress},
		{name: "above target clamped", quest: quest(StatusInProgress, 2, 5), newCurrent: 9, wantCur: 5, wantPct: 100, wantStatus: StatusCompleted},
		{name: "partial progress", quest: quest(StatusInProgress, 1, 4), newCurrent: 3, wantCur: 3, wantPct: 75, wantStatus: StatusInProgress},
		{name: "target reached from in_progress", quest: quest(StatusInProgress, 4, 5), newCurrent: 5, wantCur: 5, wantPct: 100, wantStatus: StatusCompleted},
		{name: "target reached from available", quest: quest(StatusAvailable, 0, 1), newCurrent: 1, wantCur: 1, wantPct: 100, wantStatus: StatusCompleted},
		{name: "locked quest never completes", quest: quest(StatusLocked, 0, 3), newCurrent: 3, wantCur: 3, wantPct: 100, wantStatus: StatusLocked},
		{name: "expired quest keeps status", quest: quest(StatusExpired, 1, 3), newCurrent: 3, wantCur: 3, wantPct: 100, wantStatus: StatusExpired},
		{name: "completion is one-way", quest: quest(StatusCompleted, 5, 5), newCurrent: 2, wantCur: 2, wantPct: 40, wantStatus: StatusCompleted},
		{name: "claimed is never reverted", quest: quest(StatusClaimed, 5, 5), newCurrent: 0, wantCur: 0, wantPct: 0, wantStatus: StatusClaimed},
		{name: "zero target clamps current to zero", quest: quest(StatusInProgress, 0, 0), newCurrent: 7, wantCur: 0, wantPct: 0, wantStatus: StatusInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyProgress(tt.quest, tt.newCurrent)
			if got.Progress.Current != tt.wantCur {
				t.Errorf("ApplyProgress() current = %d, want %d", got.Progress.Current, tt.wantCur)
			}
			if got.Progress.Percentage != tt.wantPct {
				t.Errorf("ApplyProgress() percentage = %v, want %v", got.Progress.Percentage, tt.wantPct)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("ApplyProgress() status = %s, want %s", got.Status, tt.wantStatus)
			}

			// invariants: current in [0, target], percentage in [0, 100]
			if got.Progress.Current < 0 {
				t.Errorf("ApplyProgress() produced negative current %d", got.Progress.Current)
			}
			if got.Progress.Current > got.Progress.Target {
				t.Errorf("ApplyProgress() produced current %d > target %d", got.Progress.Current, got.Progress.Target)
			}
			if pct := got.Progress.Percentage; pct < 0 || pct > 100 {
				t.Errorf("ApplyProgress() produced percentage %v out of [0, 100]", pct)
			}
		})
	}
}

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name            string
		current, target int
		want            float64
	}{
		{name: "zero target", current: 5, target: 0, want: 0},
		{name: "negative target", current: 5, target: -1, want: 0},
		{name: "zero current", current: 0, target: 10, want: 0},
		{name: "half", current: 5, target: 10, want: 50},
		{name: "full", current: 10, target: 10, want: 100},
		{name: "overshoot clamped", current: 15, target: 10, want: 100},
		{name: "negative current clamped", current: -5, target: 10, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressPercentage(tt.current, tt.target); got != tt.want {
				t.Errorf("ProgressPercentage(%d, %d) = %v, want %v", tt.current, tt.target, got, tt.want)
			}
		})
	}
}

func TestQuestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to QuestStatus
		want     bool
	}{
		{StatusLocked, StatusAvailable, true},
		{StatusLocked, StatusInProgress, false},
		{StatusAvailable, StatusInProgress, true},
		{StatusAvailable, StatusCompleted, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusClaimed, false},
		{StatusCompleted, StatusClaimed, true},
		{StatusCompleted, StatusInProgress, false},
		{StatusClaimed, StatusCompleted, false},
		{StatusInProgress, StatusExpired, true},
		{StatusExpired, StatusAvailable, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.want)
			}
		})
	}

	for _, status := range AllQuestStatuses {
		terminal := status == StatusClaimed || status == StatusExpired
		if got := status.IsTerminal(); got != terminal {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, terminal)
		}
	}
}
