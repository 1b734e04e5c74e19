package testutil

import (
	"encoding/json"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/questboard/core/dashboard"
)

// NewSnapshot builds a small but fully valid snapshot for userID.
func NewSnapshot(userID string) dashboard.Snapshot {
	now := time.Date(2021, 5, 12, 9, 0, 0, 0, time.UTC)
	deadline := now.Add(8 * time.Hour)

	snap := dashboard.Snapshot{
		User: dashboard.DashboardUser{
			ID:       userID,
			Username: "hero",
			Name:     "Hero T.",
			Stats: dashboard.UserStats{
				Level:            5,
				CurrentXP:        120,
				RequiredXP:       300,
				TotalXP:          1320,
				Coins:            45,
				Gems:             3,
				Rank:             dashboard.Rank{Tier: dashboard.TierSilver, MinXP: 1000},
				RankPosition:     2,
				StreakDays:       4,
				AchievementCount: 7,
				QuestsCompleted:  19,
				AttendanceRate:   88,
			},
		},
		ActiveQuests: []dashboard.DashboardQuest{
			NewQuest("q1", dashboard.QuestDaily, dashboard.StatusInProgress, 3, 5),
			NewQuest("q2", dashboard.QuestMain, dashboard.StatusAvailable, 0, 8),
		},
		Activities: []dashboard.DashboardActivity{
			{ID: "a2", Type: dashboard.ActivityLevelUp, Title: "Reached level 5", OccurredAt: now.Add(-time.Hour)},
			{ID: "a1", Type: dashboard.ActivityQuestCompleted, Title: "Completed a quest", OccurredAt: now.Add(-2 * time.Hour), XPGained: 40, CoinsGained: 10},
		},
		UpcomingClasses: []dashboard.UpcomingClass{
			{ID: "c1", Subject: "Math", Topic: "Fractions", Teacher: "Mr. Euler", Room: "A1", StartsAt: now.Add(3 * time.Hour), EndsAt: now.Add(4 * time.Hour)},
		},
		Leaderboard: []dashboard.LeaderboardEntry{
			{Position: 1, UserID: "u9", Username: "top", Level: 8, TotalXP: 2400, WeeklyXP: 310},
			{Position: 2, UserID: userID, Username: "hero", Level: 5, TotalXP: 1320, WeeklyXP: 220, IsCurrentUser: true},
		},
		FeaturedBadges: []dashboard.FeaturedBadge{
			{ID: "b1", Name: "Early Bird", Rarity: dashboard.RarityRare},
		},
		WeeklyStats: dashboard.WeeklyStats{
			XPEarned: 220, CoinsEarned: 60, QuestsCompleted: 4, ClassesAttended: 3, DaysActive: 4, BestDay: "Tuesday",
		},
	}
	snap.ActiveQuests[0].Deadline = &deadline
	snap.ActiveQuests[0].IsExpiringSoon = true
	return snap
}

// NewQuest builds a quest with a consistent progress percentage.
func NewQuest(id string, typ dashboard.QuestType, status dashboard.QuestStatus, current, target int) dashboard.DashboardQuest {
	return dashboard.DashboardQuest{
		ID:         id,
		Title:      "Quest " + id,
		Type:       typ,
		Category:   "math",
		Difficulty: dashboard.DifficultyMedium,
		Status:     status,
		Progress: dashboard.QuestProgress{
			Current:    current,
			Target:     target,
			Percentage: dashboard.ProgressPercentage(current, target),
		},
		Rewards: dashboard.QuestRewards{XP: 50, Coins: 10},
	}
}

// JSONDiff renders a unified diff of two JSON payloads for test failures.
func JSONDiff(got, want []byte) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(indentJSON(got)),
		B:        difflib.SplitLines(indentJSON(want)),
		FromFile: "got",
		ToFile:   "want",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

func indentJSON(b []byte) string {
	var buf json.RawMessage
	if err := json.Unmarshal(b, &buf); err != nil {
		return string(b)
	}
	out, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return string(b)
	}
	return string(out)
}
