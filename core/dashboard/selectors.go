package dashboard

// Selectors are pure views over an explicit State; they never mutate it and
// recompute from scratch on every call.

func InProgressQuests(s State) []DashboardQuest {
	return filterQuests(s.ActiveQuests, func(q DashboardQuest) bool {
		return q.Status == StatusInProgress
	})
}

func DailyQuests(s State) []DashboardQuest {
	return filterQuests(s.ActiveQuests, func(q DashboardQuest) bool {
		return q.Type == QuestDaily
	})
}

func ExpiringQuests(s State) []DashboardQuest {
	return filterQuests(s.ActiveQuests, func(q DashboardQuest) bool {
		return q.IsExpiringSoon
	})
}

// VisibleQuests applies the user's display preferences: completed (and
// claimed) quests are hidden unless showCompletedQuests is on, then the
// persisted filters narrow what remains.
func VisibleQuests(s State) []DashboardQuest {
	show := s.Preferences.ShowCompletedQuests
	filters := s.Preferences.Filters
	return filterQuests(s.ActiveQuests, func(q DashboardQuest) bool {
		if !show && (q.Status == StatusCompleted || q.Status == StatusClaimed) {
			return false
		}
		return filters.Match(q)
	})
}

// LimitedActivities returns the activityLimit most recent activities,
// newest first. The log itself is already newest-first.
func LimitedActivities(s State) []DashboardActivity {
	limit := s.Preferences.ActivityLimit
	if limit <= 0 || limit > len(s.Activities) {
		limit = len(s.Activities)
	}
	return s.Activities[:limit]
}

// CurrentUserRank returns the leaderboard entry flagged as the current user.
// The loaded leaderboard is a window, not a full ranking, so the user may
// legitimately be absent.
func CurrentUserRank(s State) (LeaderboardEntry, bool) {
	for _, entry := range s.Leaderboard {
		if entry.IsCurrentUser {
			return entry, true
		}
	}
	return LeaderboardEntry{}, false
}

func filterQuests(quests []DashboardQuest, keep func(DashboardQuest) bool) []DashboardQuest {
	res := make([]DashboardQuest, 0, len(quests))
	for _, q := range quests {
		if keep(q) {
			res = append(res, q)
		}
	}
	return res
}
