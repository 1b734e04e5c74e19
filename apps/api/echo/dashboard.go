package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/questboard/core/dashboard"
)

type dashboardApi struct {
	store *dashboard.Store
}

func registerDashboardAPI(g *echo.Group, store *dashboard.Store) {
	api := dashboardApi{store: store}

	dg := g.Group("/dashboard")

	dg.GET("", api.stateRetrieve)
	dg.POST("/load", api.load)
	dg.POST("/refresh", api.refresh)
	dg.POST("/reset", api.reset)

	dg.GET("/quests", api.questList)
	dg.PUT("/quests/:id/progress", api.questUpdateProgress)

	dg.GET("/activities", api.activityList)
	dg.POST("/activities", api.activityCreate)

	dg.POST("/rewards/xp", api.rewardAddXP)
	dg.POST("/rewards/coins", api.rewardAddCoins)
	dg.DELETE("/rewards", api.rewardClear)

	dg.GET("/rank", api.rankRetrieve)

	dg.GET("/preferences", api.preferenceRetrieve)
	dg.PUT("/preferences/filters", api.preferenceSetFilters)
	dg.POST("/preferences/show-completed/toggle", api.preferenceToggleShowCompleted)
	dg.PUT("/preferences/activity-limit", api.preferenceSetActivityLimit)
}

// Handlers

func (api *dashboardApi) stateRetrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.State())
}

// load triggers a full fetch and returns the resulting state; fetch failures
// surface in the state's error field, not as an HTTP error.
func (api *dashboardApi) load(ctx echo.Context) error {
	api.store.FetchDashboardData(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, api.store.State())
}

func (api *dashboardApi) refresh(ctx echo.Context) error {
	api.store.RefreshDashboard(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, api.store.State())
}

func (api *dashboardApi) reset(ctx echo.Context) error {
	api.store.Reset()
	return ctx.JSON(http.StatusOK, api.store.State())
}

func (api *dashboardApi) questList(ctx echo.Context) error {
	st := api.store.State()

	var quests []dashboard.DashboardQuest
	switch view := ctx.QueryParam("view"); view {
	case "", "all":
		quests = st.ActiveQuests
	case "visible":
		quests = dashboard.VisibleQuests(st)
	case "in_progress":
		quests = dashboard.InProgressQuests(st)
	case "daily":
		quests = dashboard.DailyQuests(st)
	case "expiring":
		quests = dashboard.ExpiringQuests(st)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown view: "+view)
	}
	return ctx.JSON(http.StatusOK, quests)
}

func (api *dashboardApi) questUpdateProgress(ctx echo.Context) error {
	data := new(ProgressUpdateRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.store.UpdateQuestProgress(ctx.Param("id"), *data.Current); err != nil {
		if errors.Cause(err) == dashboard.ErrQuestNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, api.store.State())
}

func (api *dashboardApi) activityList(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, dashboard.LimitedActivities(api.store.State()))
}

func (api *dashboardApi) activityCreate(ctx echo.Context) error {
	data := new(ActivityRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	api.store.AddActivity(data.activity())
	return ctx.JSON(http.StatusCreated, api.store.State().Activities)
}

func (api *dashboardApi) rewardAddXP(ctx echo.Context) error {
	data := new(RewardRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	api.store.AddPendingXP(data.Amount)
	return ctx.JSON(http.StatusOK, api.store.State().Rewards)
}

func (api *dashboardApi) rewardAddCoins(ctx echo.Context) error {
	data := new(RewardRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	api.store.AddPendingCoins(data.Amount)
	return ctx.JSON(http.StatusOK, api.store.State().Rewards)
}

func (api *dashboardApi) rewardClear(ctx echo.Context) error {
	api.store.ClearPendingRewards()
	return ctx.JSON(http.StatusOK, api.store.State().Rewards)
}

func (api *dashboardApi) rankRetrieve(ctx echo.Context) error {
	entry, ok := dashboard.CurrentUserRank(api.store.State())
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, entry)
}

func (api *dashboardApi) preferenceRetrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.State().Preferences)
}

func (api *dashboardApi) preferenceSetFilters(ctx echo.Context) error {
	data := new(dashboard.UpdateFilters)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	if err := api.store.SetFilters(*data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.store.State().Preferences)
}

func (api *dashboardApi) preferenceToggleShowCompleted(ctx echo.Context) error {
	api.store.ToggleShowCompletedQuests()
	return ctx.JSON(http.StatusOK, api.store.State().Preferences)
}

func (api *dashboardApi) preferenceSetActivityLimit(ctx echo.Context) error {
	data := new(ActivityLimitRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.store.SetActivityLimit(data.Limit); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.store.State().Preferences)
}
