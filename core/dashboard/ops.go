package dashboard

// Op identifies a store mutation. Every state change delivered to
// subscribers carries one, so mutations are statically enumerable and
// traceable without free-form debug labels.
type Op uint8

const (
	OpLoadStarted Op = iota + 1
	OpSnapshotLoaded
	OpLoadFailed
	OpLoadDiscarded
	OpRefreshStarted
	OpSnapshotRefreshed
	OpRefreshFailed
	OpQuestProgressUpdated
	OpActivityAdded
	OpPendingXPAdded
	OpPendingCoinsAdded
	OpPendingRewardsCleared
	OpFiltersSet
	OpShowCompletedToggled
	OpActivityLimitSet
	OpReset
)

var opNames = map[Op]string{
	OpLoadStarted:           "load_started",
	OpSnapshotLoaded:        "snapshot_loaded",
	OpLoadFailed:            "load_failed",
	OpLoadDiscarded:         "load_discarded",
	OpRefreshStarted:        "refresh_started",
	OpSnapshotRefreshed:     "snapshot_refreshed",
	OpRefreshFailed:         "refresh_failed",
	OpQuestProgressUpdated:  "quest_progress_updated",
	OpActivityAdded:         "activity_added",
	OpPendingXPAdded:        "pending_xp_added",
	OpPendingCoinsAdded:     "pending_coins_added",
	OpPendingRewardsCleared: "pending_rewards_cleared",
	OpFiltersSet:            "filters_set",
	OpShowCompletedToggled:  "show_completed_toggled",
	OpActivityLimitSet:      "activity_limit_set",
	OpReset:                 "reset",
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "unknown"
}
