package dummysource

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/questboard/core/dashboard"
)

// service serves a generated sample snapshot so the dashboard can run without
// the upstream gamification API (local dev and tests).
type service struct {
	userID string
}

var _ dashboard.Source = (*service)(nil)

func NewService(userID string) dashboard.Source {
	return &service{userID: userID}
}

func (svc *service) FetchAll(_ context.Context) (dashboard.Snapshot, error) {
	now := time.Now().UTC()
	usr := svc.sampleUser()
	return dashboard.Snapshot{
		User:            usr,
		ActiveQuests:    sampleQuests(now),
		Activities:      sampleActivities(now),
		UpcomingClasses: sampleClasses(now),
		Leaderboard: []dashboard.LeaderboardEntry{
			{Position: 1, UserID: uuid.New().String(), Username: "ada", Level: 12, TotalXP: 5400, WeeklyXP: 320},
			{Position: 2, UserID: uuid.New().String(), Username: "blaise", Level: 11, TotalXP: 5100, WeeklyXP: 280},
			{Position: 3, UserID: svc.userID, Username: usr.Username, Level: usr.Stats.Level, TotalXP: usr.Stats.TotalXP, WeeklyXP: 240, IsCurrentUser: true},
		},
		FeaturedBadges: []dashboard.FeaturedBadge{
			{ID: uuid.New().String(), Name: "Early Bird", Description: "Attended 5 morning classes", Icon: "sunrise", Rarity: dashboard.RarityRare},
			{ID: uuid.New().String(), Name: "Streak Master", Description: "Kept a 30 day streak", Icon: "flame", Rarity: dashboard.RarityEpic},
		},
		WeeklyStats: dashboard.WeeklyStats{
			XPEarned:        240,
			CoinsEarned:     85,
			QuestsCompleted: 6,
			ClassesAttended: 4,
			DaysActive:      5,
			BestDay:         "Wednesday",
		},
	}, nil
}

func (svc *service) FetchPartial(ctx context.Context) (dashboard.PartialSnapshot, error) {
	snap, _ := svc.FetchAll(ctx)
	return dashboard.PartialSnapshot{
		User:            snap.User,
		ActiveQuests:    snap.ActiveQuests,
		Activities:      snap.Activities,
		UpcomingClasses: snap.UpcomingClasses,
	}, nil
}

func (svc *service) sampleUser() dashboard.DashboardUser {
	return dashboard.DashboardUser{
		ID:       svc.userID,
		Username: "grace",
		Name:     "Grace H.",
		Title:    "Equation Slayer",
		Clan:     "Lambda",
		Stats: dashboard.UserStats{
			Level:            9,
			CurrentXP:        340,
			RequiredXP:       500,
			TotalXP:          4340,
			Coins:            120,
			Gems:             8,
			Rank:             dashboard.Rank{Tier: dashboard.TierGold, MinXP: 4000},
			RankPosition:     3,
			StreakDays:       12,
			AchievementCount: 23,
			QuestsCompleted:  57,
			AttendanceRate:   92.5,
		},
	}
}

func sampleQuests(now time.Time) []dashboard.DashboardQuest {
	tonight := now.Add(6 * time.Hour)
	nextWeek := now.Add(6 * 24 * time.Hour)
	return []dashboard.DashboardQuest{
		{
			ID:             uuid.New().String(),
			Title:          "Solve 5 practice equations",
			Type:           dashboard.QuestDaily,
			Category:       "math",
			Difficulty:     dashboard.DifficultyEasy,
			Status:         dashboard.StatusInProgress,
			Progress:       dashboard.QuestProgress{Current: 3, Target: 5, Percentage: 60},
			Rewards:        dashboard.QuestRewards{XP: 50, Coins: 10},
			Deadline:       &tonight,
			IsExpiringSoon: true,
		},
		{
			ID:         uuid.New().String(),
			Title:      "Attend every class this week",
			Type:       dashboard.QuestWeekly,
			Category:   "attendance",
			Difficulty: dashboard.DifficultyMedium,
			Status:     dashboard.StatusInProgress,
			Progress:   dashboard.QuestProgress{Current: 4, Target: 5, Percentage: 80},
			Rewards:    dashboard.QuestRewards{XP: 150, Coins: 40},
			Deadline:   &nextWeek,
		},
		{
			ID:         uuid.New().String(),
			Title:      "Finish the algebra chapter",
			Type:       dashboard.QuestMain,
			Category:   "math",
			Difficulty: dashboard.DifficultyHard,
			Status:     dashboard.StatusAvailable,
			Progress:   dashboard.QuestProgress{Current: 0, Target: 8, Percentage: 0},
			Rewards:    dashboard.QuestRewards{XP: 400, Coins: 100, Gems: 2},
		},
		{
			ID:         uuid.New().String(),
			Title:      "Help a clanmate with homework",
			Type:       dashboard.QuestSide,
			Category:   "social",
			Difficulty: dashboard.DifficultyEasy,
			Status:     dashboard.StatusCompleted,
			Progress:   dashboard.QuestProgress{Current: 1, Target: 1, Percentage: 100},
			Rewards:    dashboard.QuestRewards{XP: 30, Coins: 5},
		},
	}
}

func sampleActivities(now time.Time) []dashboard.DashboardActivity {
	return []dashboard.DashboardActivity{
		{ID: uuid.New().String(), Type: dashboard.ActivityQuestCompleted, Title: "Completed \"Help a clanmate\"", OccurredAt: now.Add(-time.Hour), XPGained: 30, CoinsGained: 5},
		{ID: uuid.New().String(), Type: dashboard.ActivityStreakExtended, Title: "Streak extended to 12 days", OccurredAt: now.Add(-26 * time.Hour), XPGained: 10},
		{ID: uuid.New().String(), Type: dashboard.ActivityBadgeEarned, Title: "Earned \"Early Bird\"", OccurredAt: now.Add(-2 * 24 * time.Hour)},
		{ID: uuid.New().String(), Type: dashboard.ActivityLevelUp, Title: "Reached level 9", OccurredAt: now.Add(-3 * 24 * time.Hour), XPGained: 0},
	}
}

func sampleClasses(now time.Time) []dashboard.UpcomingClass {
	return []dashboard.UpcomingClass{
		{
			ID:       uuid.New().String(),
			Subject:  "Mathematics",
			Topic:    "Quadratic equations",
			Teacher:  "Mr. Banach",
			Room:     "B12",
			StartsAt: now.Add(2 * time.Hour),
			EndsAt:   now.Add(3 * time.Hour),
		},
		{
			ID:       uuid.New().String(),
			Subject:  "Physics",
			Topic:    "Kinematics",
			Teacher:  "Ms. Noether",
			Room:     "Lab 2",
			StartsAt: now.Add(26 * time.Hour),
			EndsAt:   now.Add(27 * time.Hour),
		},
	}
}
