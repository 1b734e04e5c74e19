package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/questboard/core"
)

var (
	// errors
	ErrQuestNotFound       = errors.New("quest not found")
	ErrPreferencesNotFound = errors.New("preferences not found")

	defaultPersistTimeout = 5 * time.Second
)

// FetchError is returned by Source implementations when a load fails. Message
// is safe to surface to the user; the underlying error is kept for logging.
type FetchError struct {
	Message string
	Err     error
}

func NewFetchError(message string, err error) *FetchError {
	return &FetchError{Message: message, Err: err}
}

func (e *FetchError) Error() string { return e.Message }
func (e *FetchError) Unwrap() error { return e.Err }

type (
	// Source fetches validated snapshots from the upstream gamification API.
	// Implementations must validate at their boundary; the store trusts what
	// it is handed and never retries on its own.
	Source interface {
		FetchAll(ctx context.Context) (Snapshot, error)
		FetchPartial(ctx context.Context) (PartialSnapshot, error)
	}

	// PreferenceRepository persists the preferences subset only; snapshot
	// data is never written and must be re-fetched each session.
	PreferenceRepository interface {
		// GetPreferences returns ErrPreferencesNotFound on first use.
		GetPreferences(ctx context.Context, userID string) (Preferences, error)
		SavePreferences(ctx context.Context, userID string, prefs Preferences) error
	}

	// State is the dashboard snapshot plus its lifecycle. Subscribers and
	// selectors receive copies and must treat the slices as read-only; all
	// writes funnel through the Store's named operations.
	State struct {
		User            *DashboardUser      `json:"user"`
		ActiveQuests    []DashboardQuest    `json:"active_quests"`
		Activities      []DashboardActivity `json:"activities"`
		UpcomingClasses []UpcomingClass     `json:"upcoming_classes"`
		Leaderboard     []LeaderboardEntry  `json:"leaderboard"`
		FeaturedBadges  []FeaturedBadge     `json:"featured_badges"`
		WeeklyStats     WeeklyStats         `json:"weekly_stats"`

		IsLoading    bool   `json:"is_loading"`
		IsRefreshing bool   `json:"is_refreshing"`
		Error        string `json:"error,omitempty"`

		Preferences Preferences `json:"preferences"`
		Rewards     RewardTally `json:"rewards"`
	}

	// Subscriber is notified synchronously after every state change, before
	// the mutating call returns.
	Subscriber func(op Op, s State)

	subscription struct {
		id int
		fn Subscriber
	}

	// Store owns the authoritative in-memory dashboard state for one user.
	// It is constructed explicitly and injected wherever needed; there is no
	// package-level instance.
	Store struct {
		userID         string
		source         Source
		prefs          PreferenceRepository
		logger         core.Logger
		persistTimeout time.Duration

		mu    sync.Mutex
		state State

		// loadSeq tags every load (full fetch or refresh) with a
		// monotonically increasing token; a result is applied only if its
		// token is still the latest issued, so a slow fetch can never
		// overwrite a newer refresh. lastFetchTok/lastRefreshTok track
		// per-kind flag ownership so a superseded load still clears the
		// lifecycle flag it set.
		loadSeq        uint64
		lastFetchTok   uint64
		lastRefreshTok uint64

		subs    []subscription
		nextSub int

		persistWG sync.WaitGroup // in-flight preference saves
	}
)

// NewStore builds a store for userID and rehydrates the persisted
// preferences. A zero persistTimeout falls back to the default.
func NewStore(
	ctx context.Context,
	userID string,
	src Source,
	prefs PreferenceRepository,
	logger core.Logger,
	persistTimeout time.Duration,
) *Store {
	if persistTimeout <= 0 {
		persistTimeout = defaultPersistTimeout
	}
	s := &Store{
		userID:         userID,
		source:         src,
		prefs:          prefs,
		logger:         logger,
		persistTimeout: persistTimeout,
		state:          initialState(),
	}

	p, err := prefs.GetPreferences(ctx, userID)
	switch errors.Cause(err) {
	case nil:
		// a stale row may predate the current constraints
		if vErr := p.Validate(); vErr != nil {
			logger.Warn("dashboard: persisted preferences invalid, using defaults", vErr)
		} else {
			s.state.Preferences = p
		}
	case ErrPreferencesNotFound: // first use; keep defaults
	default:
		logger.Warn("dashboard: loading preferences, using defaults", err)
	}
	return s
}

func initialState() State {
	return State{Preferences: DefaultPreferences()}
}

func (s *Store) UserID() string { return s.userID }

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn for synchronous change notification and returns an
// unsubscribe func. Subscribers must not mutate the received state.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// FetchDashboardData runs a full load. The adapter call blocks outside the
// state lock; failures land in State.Error and are never returned, the UI
// observes the outcome via state only. Previously loaded data survives a
// failure, and a result superseded by a newer load is discarded silently.
func (s *Store) FetchDashboardData(ctx context.Context) {
	s.mu.Lock()
	s.loadSeq++
	tok := s.loadSeq
	s.lastFetchTok = tok
	s.state.IsLoading = true
	s.state.Error = ""
	st, subs := s.state, s.subscribers()
	s.mu.Unlock()
	s.publish(subs, OpLoadStarted, st)

	snap, err := s.source.FetchAll(ctx)

	s.mu.Lock()
	stale := tok != s.loadSeq
	ownsFlag := tok == s.lastFetchTok
	if ownsFlag {
		s.state.IsLoading = false
	}
	if stale {
		if !ownsFlag { // nothing changed
			s.mu.Unlock()
			return
		}
		st, subs = s.state, s.subscribers()
		s.mu.Unlock()
		s.publish(subs, OpLoadDiscarded, st)
		return
	}

	op := OpSnapshotLoaded
	if err != nil {
		s.state.Error = userMessage(err)
		op = OpLoadFailed
	} else {
		s.applySnapshot(snap)
	}
	st, subs = s.state, s.subscribers()
	s.mu.Unlock()
	s.publish(subs, op, st)
}

// RefreshDashboard reloads the fast-changing subset (user, quests,
// activities, classes) for pull-to-refresh; leaderboard, badges and weekly
// stats are left as-is. Same failure and staleness rules as a full load.
func (s *Store) RefreshDashboard(ctx context.Context) {
	s.mu.Lock()
	s.loadSeq++
	tok := s.loadSeq
	s.lastRefreshTok = tok
	s.state.IsRefreshing = true
	st, subs := s.state, s.subscribers()
	s.mu.Unlock()
	s.publish(subs, OpRefreshStarted, st)

	part, err := s.source.FetchPartial(ctx)

	s.mu.Lock()
	stale := tok != s.loadSeq
	ownsFlag := tok == s.lastRefreshTok
	if ownsFlag {
		s.state.IsRefreshing = false
	}
	if stale {
		if !ownsFlag {
			s.mu.Unlock()
			return
		}
		st, subs = s.state, s.subscribers()
		s.mu.Unlock()
		s.publish(subs, OpLoadDiscarded, st)
		return
	}

	op := OpSnapshotRefreshed
	if err != nil {
		s.state.Error = userMessage(err)
		op = OpRefreshFailed
	} else {
		s.state.Error = ""
		s.applyPartial(part)
	}
	st, subs = s.state, s.subscribers()
	s.mu.Unlock()
	s.publish(subs, op, st)
}

// UpdateQuestProgress applies the progress rule to one quest. The quest list
// is copied and only the targeted element rewritten.
func (s *Store) UpdateQuestProgress(questID string, newCurrent int) error {
	s.mu.Lock()
	idx := -1
	for i, q := range s.state.ActiveQuests {
		if q.ID == questID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return errors.Wrap(ErrQuestNotFound, questID)
	}

	quests := make([]DashboardQuest, len(s.state.ActiveQuests))
	copy(quests, s.state.ActiveQuests)
	quests[idx] = ApplyProgress(quests[idx], newCurrent)
	s.state.ActiveQuests = quests

	st, subs := s.state, s.subscribers()
	s.mu.Unlock()
	s.publish(subs, OpQuestProgressUpdated, st)
	return nil
}

// AddActivity prepends to the activity log; entries beyond MaxActivityLog
// are silently dropped, oldest first.
func (s *Store) AddActivity(a DashboardActivity) {
	s.mu.Lock()
	acts := make([]DashboardActivity, 0, len(s.state.Activities)+1)
	acts = append(acts, a)
	acts = append(acts, s.state.Activities...)
	s.state.Activities = boundActivities(acts)

	st, subs := s.state, s.subscribers()
	s.mu.Unlock()
	s.publish(subs, OpActivityAdded, st)
}

func (s *Store) AddPendingXP(amount int) {
	s.commit(OpPendingXPAdded, func(st *State) {
		st.Rewards = st.Rewards.AddXP(amount)
	})
}

func (s *Store) AddPendingCoins(amount int) {
	s.commit(OpPendingCoinsAdded, func(st *State) {
		st.Rewards = st.Rewards.AddCoins(amount)
	})
}

func (s *Store) ClearPendingRewards() {
	s.commit(OpPendingRewardsCleared, func(st *State) {
		st.Rewards = st.Rewards.Clear()
	})
}

// SetFilters applies a partial filter update and persists the preferences.
func (s *Store) SetFilters(uf UpdateFilters) error {
	if err := uf.Validate(); err != nil {
		return err
	}
	st := s.commit(OpFiltersSet, func(st *State) {
		st.Preferences.Filters = st.Preferences.Filters.Apply(uf)
	})
	s.persist(st.Preferences)
	return nil
}

func (s *Store) ToggleShowCompletedQuests() {
	st := s.commit(OpShowCompletedToggled, func(st *State) {
		st.Preferences.ShowCompletedQuests = !st.Preferences.ShowCompletedQuests
	})
	s.persist(st.Preferences)
}

// SetActivityLimit applies the activity display limit and persists the
// preferences. An out-of-range limit is rejected with a field error.
func (s *Store) SetActivityLimit(n int) error {
	if n < 1 || n > MaxActivityLog {
		return core.NewValidationError(nil, core.FieldError{
			Field: "activity_limit",
			Error: fmt.Sprintf("must be between 1 and %d", MaxActivityLog),
		})
	}
	st := s.commit(OpActivityLimitSet, func(st *State) {
		st.Preferences.ActivityLimit = n
	})
	s.persist(st.Preferences)
	return nil
}

// Reset restores the initial state (used for logout and test teardown) and
// invalidates any in-flight load so a late result cannot resurrect the old
// session's data. Persisted preferences are left alone.
func (s *Store) Reset() {
	s.mu.Lock()
	s.loadSeq++
	s.lastFetchTok, s.lastRefreshTok = 0, 0
	s.state = initialState()
	st, subs := s.state, s.subscribers()
	s.mu.Unlock()
	s.publish(subs, OpReset, st)
}

// WaitPersist blocks until in-flight preference saves finish. Only tests and
// shutdown paths should need it.
func (s *Store) WaitPersist() {
	s.persistWG.Wait()
}

// unexported helpers

func (s *Store) commit(op Op, mutate func(*State)) State {
	s.mu.Lock()
	mutate(&s.state)
	st, subs := s.state, s.subscribers()
	s.mu.Unlock()
	s.publish(subs, op, st)
	return st
}

// subscribers returns a stable-order copy; must be called with mu held.
func (s *Store) subscribers() []subscription {
	if len(s.subs) == 0 {
		return nil
	}
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	return subs
}

func (s *Store) publish(subs []subscription, op Op, st State) {
	s.logger.Debug("dashboard: " + op.String())
	for _, sub := range subs {
		sub.fn(op, st)
	}
}

// applySnapshot replaces all snapshot fields atomically; must be called with
// mu held.
func (s *Store) applySnapshot(snap Snapshot) {
	usr := snap.User
	s.state.User = &usr
	s.state.ActiveQuests = snap.ActiveQuests
	s.state.Activities = boundActivities(snap.Activities)
	s.state.UpcomingClasses = snap.UpcomingClasses
	s.state.Leaderboard = snap.Leaderboard
	s.state.FeaturedBadges = snap.FeaturedBadges
	s.state.WeeklyStats = snap.WeeklyStats
}

func (s *Store) applyPartial(part PartialSnapshot) {
	usr := part.User
	s.state.User = &usr
	s.state.ActiveQuests = part.ActiveQuests
	s.state.Activities = boundActivities(part.Activities)
	s.state.UpcomingClasses = part.UpcomingClasses
}

// persist writes the preferences subset on a background goroutine so state
// transitions never block on storage; failures are logged and cannot touch
// in-memory state.
func (s *Store) persist(prefs Preferences) {
	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
		defer cancel()
		if err := s.prefs.SavePreferences(ctx, s.userID, prefs); err != nil {
			if core.IsShutdown(err) {
				s.logger.Error("dashboard: saving preferences", err)
			} else {
				s.logger.Warn("dashboard: saving preferences", err)
			}
		}
	}()
}

func boundActivities(acts []DashboardActivity) []DashboardActivity {
	if len(acts) > MaxActivityLog {
		return acts[:MaxActivityLog]
	}
	return acts
}

// userMessage unwraps err to the adapter's user-facing message.
func userMessage(err error) string {
	return errors.Cause(err).Error()
}
