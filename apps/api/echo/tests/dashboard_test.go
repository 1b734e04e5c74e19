package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/questboard/core/dashboard"
)

func Test_dashboardApi_load(t *testing.T) {
	app, store, src := setup(t)

	t.Run("ok", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/dashboard/load")
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		st := store.State()
		require.NotNil(t, st.User)
		assert.Equal(t, "hero", st.User.Username)
		assert.False(t, st.IsLoading)
		assert.Empty(t, st.Error)
	})

	t.Run("fetch failure surfaces in state, not status", func(t *testing.T) {
		src.err = dashboard.NewFetchError("Could not load your dashboard. Please try again.", nil)
		defer func() { src.err = nil }()

		req, rec := newRequest(http.MethodPost, "/v1/dashboard/load")
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		st := store.State()
		assert.Equal(t, "Could not load your dashboard. Please try again.", st.Error)
		assert.NotNil(t, st.User) // previous data kept
	})

	t.Run("state endpoint returns the full state", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/dashboard")
		app.ServeHTTP(rec, req)

		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, store.State())}
		checkCodeAndData(t, tt, rec)
	})
}

func Test_dashboardApi_refresh(t *testing.T) {
	app, store, _ := setup(t)

	req, rec := newRequest(http.MethodPost, "/v1/dashboard/load")
	app.ServeHTTP(rec, req)

	req, rec = newRequest(http.MethodPost, "/v1/dashboard/refresh")
	app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	st := store.State()
	assert.False(t, st.IsRefreshing)
	assert.NotEmpty(t, st.Leaderboard) // slow-changing data survives refresh
}

func Test_dashboardApi_questList(t *testing.T) {
	app, store, _ := setup(t)
	req, rec := newRequest(http.MethodPost, "/v1/dashboard/load")
	app.ServeHTTP(rec, req)

	st := store.State()
	tests := []httpTest{
		{name: "all", path: "/v1/dashboard/quests", wantCode: http.StatusOK, wantData: marchallObj(t, st.ActiveQuests)},
		{name: "in progress", path: "/v1/dashboard/quests?view=in_progress", wantCode: http.StatusOK, wantData: marchallObj(t, dashboard.InProgressQuests(st))},
		{name: "daily", path: "/v1/dashboard/quests?view=daily", wantCode: http.StatusOK, wantData: marchallObj(t, dashboard.DailyQuests(st))},
		{name: "expiring", path: "/v1/dashboard/quests?view=expiring", wantCode: http.StatusOK, wantData: marchallObj(t, dashboard.ExpiringQuests(st))},
		{name: "visible", path: "/v1/dashboard/quests?view=visible", wantCode: http.StatusOK, wantData: marchallObj(t, dashboard.VisibleQuests(st))},
		{name: "unknown view", path: "/v1/dashboard/quests?view=lol", wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "unknown view: lol"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_dashboardApi_questUpdateProgress(t *testing.T) {
	app, store, _ := setup(t)
	req, rec := newRequest(http.MethodPost, "/v1/dashboard/load")
	app.ServeHTTP(rec, req)

	t.Run("ok", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/dashboard/quests/q1/progress", []byte(`{"current": 5}`))
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		q := store.State().ActiveQuests[0]
		assert.Equal(t, 5, q.Progress.Current)
		assert.Equal(t, float64(100), q.Progress.Percentage)
		assert.Equal(t, dashboard.StatusCompleted, q.Status)
	})

	t.Run("unknown quest", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/dashboard/quests/nope/progress", []byte(`{"current": 1}`))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing current", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/dashboard/quests/q1/progress", []byte(`{}`))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_dashboardApi_activities(t *testing.T) {
	app, store, _ := setup(t)

	t.Run("create", func(t *testing.T) {
		body := []byte(`{"id": "a9", "type": "badge_earned", "title": "Earned a badge"}`)
		req, rec := newRequest(http.MethodPost, "/v1/dashboard/activities", body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		acts := store.State().Activities
		require.NotEmpty(t, acts)
		assert.Equal(t, "a9", acts[0].ID) // newest first
	})

	t.Run("create without id", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/dashboard/activities", []byte(`{"type": "level_up"}`))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list honors the preference limit", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/dashboard/activities")
		app.ServeHTTP(rec, req)

		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, dashboard.LimitedActivities(store.State()))}
		checkCodeAndData(t, tt, rec)
	})
}

func Test_dashboardApi_rewards(t *testing.T) {
	app, store, _ := setup(t)

	req, rec := newRequest(http.MethodPost, "/v1/dashboard/rewards/xp", []byte(`{"amount": 25}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req, rec = newRequest(http.MethodPost, "/v1/dashboard/rewards/xp", []byte(`{"amount": 75}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req, rec = newRequest(http.MethodPost, "/v1/dashboard/rewards/coins", []byte(`{"amount": 10}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rewards := store.State().Rewards
	assert.Equal(t, 100, rewards.XPGain)
	assert.Equal(t, 10, rewards.CoinsGain)

	t.Run("negative amount rejected", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/dashboard/rewards/xp", []byte(`{"amount": -5}`))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 100, store.State().Rewards.XPGain)
	})

	t.Run("clear", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/v1/dashboard/rewards")
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, store.State().Rewards.IsEmpty())
	})
}

func Test_dashboardApi_rank(t *testing.T) {
	app, _, _ := setup(t)

	t.Run("nothing loaded", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/dashboard/rank")
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/dashboard/load")
		app.ServeHTTP(rec, req)

		req, rec = newRequest(http.MethodGet, "/v1/dashboard/rank")
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"is_current_user":true`)
	})
}

func Test_dashboardApi_preferences(t *testing.T) {
	app, store, _ := setup(t)

	t.Run("defaults", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/dashboard/preferences")
		app.ServeHTTP(rec, req)

		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, dashboard.DefaultPreferences())}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("toggle show completed", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/dashboard/preferences/show-completed/toggle")
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, store.State().Preferences.ShowCompletedQuests)
	})

	t.Run("set filters", func(t *testing.T) {
		body := []byte(`{"types": ["daily", "weekly"], "difficulty": "hard"}`)
		req, rec := newRequest(http.MethodPut, "/v1/dashboard/preferences/filters", body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		filters := store.State().Preferences.Filters
		assert.Equal(t, []dashboard.QuestType{dashboard.QuestDaily, dashboard.QuestWeekly}, filters.Types)
		assert.Equal(t, dashboard.DifficultyHard, filters.Difficulty)
	})

	t.Run("invalid filter type", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/dashboard/preferences/filters", []byte(`{"types": ["lol"]}`))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("set activity limit", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/dashboard/preferences/activity-limit", []byte(`{"limit": 5}`))
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 5, store.State().Preferences.ActivityLimit)
	})

	t.Run("invalid activity limit", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/dashboard/preferences/activity-limit", []byte(`{"limit": 99}`))
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "activity_limit") // rendered as a field error map
		assert.Equal(t, 5, store.State().Preferences.ActivityLimit)
	})

	store.WaitPersist()
}

func Test_dashboardApi_reset(t *testing.T) {
	app, store, _ := setup(t)

	req, rec := newRequest(http.MethodPost, "/v1/dashboard/load")
	app.ServeHTTP(rec, req)
	require.NotNil(t, store.State().User)

	req, rec = newRequest(http.MethodPost, "/v1/dashboard/reset")
	app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	st := store.State()
	assert.Nil(t, st.User)
	assert.Empty(t, st.ActiveQuests)
	assert.Equal(t, dashboard.DefaultPreferences(), st.Preferences)
}
