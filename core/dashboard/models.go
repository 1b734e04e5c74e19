package dashboard

import (
	"time"
)

// Quest types
const (
	QuestMain        QuestType = "main"
	QuestSide        QuestType = "side"
	QuestDaily       QuestType = "daily"
	QuestWeekly      QuestType = "weekly"
	QuestEvent       QuestType = "event"
	QuestAchievement QuestType = "achievement"
)

// Quest statuses. A quest normally moves
// locked -> available -> in_progress -> completed -> claimed;
// expired is terminal and reachable from any non-terminal status.
const (
	StatusLocked     QuestStatus = "locked"
	StatusAvailable  QuestStatus = "available"
	StatusInProgress QuestStatus = "in_progress"
	StatusCompleted  QuestStatus = "completed"
	StatusClaimed    QuestStatus = "claimed"
	StatusExpired    QuestStatus = "expired"
)

// Quest difficulties
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyEpic   Difficulty = "epic"
)

// Rank tiers, lowest to highest.
const (
	TierBronze   RankTier = "bronze"
	TierSilver   RankTier = "silver"
	TierGold     RankTier = "gold"
	TierPlatinum RankTier = "platinum"
	TierDiamond  RankTier = "diamond"
	TierMaster   RankTier = "master"
)

var (
	AllQuestTypes    = []QuestType{QuestMain, QuestSide, QuestDaily, QuestWeekly, QuestEvent, QuestAchievement}
	AllQuestStatuses = []QuestStatus{StatusLocked, StatusAvailable, StatusInProgress, StatusCompleted, StatusClaimed, StatusExpired}
	AllDifficulties  = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic}
	AllRankTiers     = []RankTier{TierBronze, TierSilver, TierGold, TierPlatinum, TierDiamond, TierMaster}

	statusSuccessors = map[QuestStatus][]QuestStatus{
		StatusLocked:     {StatusAvailable, StatusExpired},
		StatusAvailable:  {StatusInProgress, StatusCompleted, StatusExpired},
		StatusInProgress: {StatusCompleted, StatusExpired},
		StatusCompleted:  {StatusClaimed, StatusExpired},
		StatusClaimed:    {},
		StatusExpired:    {},
	}
)

type (
	QuestType   string
	QuestStatus string
	Difficulty  string
	RankTier    string
)

func (t QuestType) IsValid() bool {
	for _, qt := range AllQuestTypes {
		if t == qt {
			return true
		}
	}
	return false
}

func (s QuestStatus) IsValid() bool {
	for _, qs := range AllQuestStatuses {
		if s == qs {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition can leave this status.
func (s QuestStatus) IsTerminal() bool {
	return len(statusSuccessors[s]) == 0
}

// CanTransitionTo reports whether the status state machine allows s -> next.
func (s QuestStatus) CanTransitionTo(next QuestStatus) bool {
	for _, succ := range statusSuccessors[s] {
		if succ == next {
			return true
		}
	}
	return false
}

func (d Difficulty) IsValid() bool {
	for _, df := range AllDifficulties {
		if d == df {
			return true
		}
	}
	return false
}

func (rt RankTier) IsValid() bool {
	for _, t := range AllRankTiers {
		if rt == t {
			return true
		}
	}
	return false
}

// Rank is a named bracket derived from total XP thresholds, server-supplied.
type Rank struct {
	Tier  RankTier `json:"tier" validate:"required,ranktier"`
	MinXP int      `json:"min_xp" validate:"gte=0"`
}

type UserStats struct {
	Level            int     `json:"level" validate:"gte=1"`
	CurrentXP        int     `json:"current_xp" validate:"gte=0"`
	RequiredXP       int     `json:"required_xp" validate:"gt=0"`
	TotalXP          int     `json:"total_xp" validate:"gte=0"`
	Coins            int     `json:"coins" validate:"gte=0"`
	Gems             int     `json:"gems" validate:"gte=0"`
	Rank             Rank    `json:"rank"`
	RankPosition     int     `json:"rank_position" validate:"gte=1"`
	StreakDays       int     `json:"streak_days" validate:"gte=0"`
	AchievementCount int     `json:"achievement_count" validate:"gte=0"`
	QuestsCompleted  int     `json:"quests_completed" validate:"gte=0"`
	AttendanceRate   float64 `json:"attendance_rate" validate:"gte=0,lte=100"`
}

// LevelProgress returns the level-ring ratio in [0, 1].
// Level-up transitions are server-supplied, so currentXP >= requiredXP is
// clamped rather than rolled over.
func (s UserStats) LevelProgress() float64 {
	if s.RequiredXP <= 0 {
		return 0
	}
	ratio := float64(s.CurrentXP) / float64(s.RequiredXP)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

type DashboardUser struct {
	ID        string    `json:"id" validate:"required"`
	Username  string    `json:"username" validate:"required"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	Title     string    `json:"title,omitempty"`
	Clan      string    `json:"clan,omitempty"`
	Stats     UserStats `json:"stats"`
}

type QuestProgress struct {
	Current    int     `json:"current" validate:"gte=0"`
	Target     int     `json:"target" validate:"gte=0"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
}

type QuestRewards struct {
	XP    int `json:"xp" validate:"gte=0"`
	Coins int `json:"coins" validate:"gte=0"`
	Gems  int `json:"gems,omitempty" validate:"gte=0"`
}

type DashboardQuest struct {
	ID             string        `json:"id" validate:"required"`
	Title          string        `json:"title" validate:"required"`
	Type           QuestType     `json:"type" validate:"required,questtype"`
	Category       string        `json:"category"`
	Difficulty     Difficulty    `json:"difficulty" validate:"omitempty,difficulty"`
	Status         QuestStatus   `json:"status" validate:"required,queststatus"`
	Progress       QuestProgress `json:"progress"`
	Rewards        QuestRewards  `json:"rewards"`
	Deadline       *time.Time    `json:"deadline,omitempty"`
	IsExpiringSoon bool          `json:"is_expiring_soon"`
	TimeRemaining  string        `json:"time_remaining,omitempty"` // display string, computed upstream
}

// Activity types
const (
	ActivityQuestCompleted ActivityType = "quest_completed"
	ActivityLevelUp        ActivityType = "level_up"
	ActivityBadgeEarned    ActivityType = "badge_earned"
	ActivityClassAttended  ActivityType = "class_attended"
	ActivityRewardClaimed  ActivityType = "reward_claimed"
	ActivityStreakExtended ActivityType = "streak_extended"
)

type ActivityType string

// DashboardActivity is an immutable historical record; the store keeps only
// the most recent entries.
type DashboardActivity struct {
	ID          string       `json:"id" validate:"required"`
	Type        ActivityType `json:"type" validate:"required"`
	Title       string       `json:"title"`
	OccurredAt  time.Time    `json:"occurred_at"`
	XPGained    int          `json:"xp_gained"`
	CoinsGained int          `json:"coins_gained"`
}

type UpcomingClass struct {
	ID       string    `json:"id" validate:"required"`
	Subject  string    `json:"subject"`
	Topic    string    `json:"topic"`
	Teacher  string    `json:"teacher"`
	Room     string    `json:"room"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	IsLive   bool      `json:"is_live"`
}

type LeaderboardEntry struct {
	Position      int    `json:"position" validate:"gte=1"`
	UserID        string `json:"user_id" validate:"required"`
	Username      string `json:"username"`
	AvatarURL     string `json:"avatar_url"`
	Level         int    `json:"level"`
	TotalXP       int    `json:"total_xp"`
	WeeklyXP      int    `json:"weekly_xp"`
	IsCurrentUser bool   `json:"is_current_user"`
}

// Badge rarities
const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

type BadgeRarity string

type FeaturedBadge struct {
	ID          string      `json:"id" validate:"required"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Rarity      BadgeRarity `json:"rarity"`
	EarnedAt    *time.Time  `json:"earned_at,omitempty"`
}

type WeeklyStats struct {
	XPEarned        int    `json:"xp_earned"`
	CoinsEarned     int    `json:"coins_earned"`
	QuestsCompleted int    `json:"quests_completed"`
	ClassesAttended int    `json:"classes_attended"`
	DaysActive      int    `json:"days_active"`
	BestDay         string `json:"best_day"`
}

// Snapshot is the full server-provided gamification payload.
type Snapshot struct {
	User            DashboardUser       `json:"user"`
	ActiveQuests    []DashboardQuest    `json:"active_quests" validate:"dive"`
	Activities      []DashboardActivity `json:"activities" validate:"dive"`
	UpcomingClasses []UpcomingClass     `json:"upcoming_classes" validate:"dive"`
	Leaderboard     []LeaderboardEntry  `json:"leaderboard" validate:"dive"`
	FeaturedBadges  []FeaturedBadge     `json:"featured_badges" validate:"dive"`
	WeeklyStats     WeeklyStats         `json:"weekly_stats"`
}

// PartialSnapshot holds the fast-changing subset replaced on refresh.
// Leaderboard, badges and weekly stats are slow-changing and kept out.
type PartialSnapshot struct {
	User            DashboardUser       `json:"user"`
	ActiveQuests    []DashboardQuest    `json:"active_quests" validate:"dive"`
	Activities      []DashboardActivity `json:"activities" validate:"dive"`
	UpcomingClasses []UpcomingClass     `json:"upcoming_classes" validate:"dive"`
}

// Filters narrows the quest list; empty fields match everything.
type Filters struct {
	Types      []QuestType `json:"types,omitempty" validate:"omitempty,dive,questtype"`
	Categories []string    `json:"categories,omitempty"`
	Difficulty Difficulty  `json:"difficulty,omitempty" validate:"omitempty,difficulty"`
}

func (f Filters) IsEmpty() bool {
	return len(f.Types) == 0 && len(f.Categories) == 0 && f.Difficulty == ""
}

func (f Filters) Match(q DashboardQuest) bool {
	if len(f.Types) > 0 && !containsType(f.Types, q.Type) {
		return false
	}
	if len(f.Categories) > 0 && !containsString(f.Categories, q.Category) {
		return false
	}
	if f.Difficulty != "" && q.Difficulty != f.Difficulty {
		return false
	}
	return true
}

// UpdateFilters defines what filter fields may be changed; nil fields are
// left untouched.
type UpdateFilters struct {
	Types      *[]QuestType `json:"types" validate:"omitempty,dive,questtype"`
	Categories *[]string    `json:"categories"`
	Difficulty *Difficulty  `json:"difficulty" validate:"omitempty,difficulty"`
}

func (uf UpdateFilters) Validate() error {
	return validateStruct(uf)
}

// Apply returns a copy of f with the set fields of uf applied.
func (f Filters) Apply(uf UpdateFilters) Filters {
	if uf.Types != nil {
		f.Types = *uf.Types
	}
	if uf.Categories != nil {
		f.Categories = *uf.Categories
	}
	if uf.Difficulty != nil {
		f.Difficulty = *uf.Difficulty
	}
	return f
}

// MaxActivityLog bounds the activity ring; older entries are dropped.
const MaxActivityLog = 20

// Preferences is the only cross-session state; everything else is re-fetched.
type Preferences struct {
	ShowCompletedQuests bool    `json:"show_completed_quests"`
	ActivityLimit       int     `json:"activity_limit" validate:"gte=1,lte=20"`
	Filters             Filters `json:"filters"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		ShowCompletedQuests: false,
		ActivityLimit:       10,
	}
}

func (p Preferences) Validate() error {
	return validateStruct(p)
}

func containsType(types []QuestType, t QuestType) bool {
	for _, qt := range types {
		if qt == t {
			return true
		}
	}
	return false
}

func containsString(vals []string, s string) bool {
	for _, v := range vals {
		if v == s {
			return true
		}
	}
	return false
}
