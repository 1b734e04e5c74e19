package echoapi

import (
	"time"

	"github.com/trezcool/questboard/core"
	"github.com/trezcool/questboard/core/dashboard"
)

type ProgressUpdateRequest struct {
	// pointer so an explicit 0 survives binding
	Current *int `json:"current" validate:"required,gte=0"`
}

func (r *ProgressUpdateRequest) Validate() error {
	return core.Validate.Struct(r)
}

type ActivityRequest struct {
	ID          string                 `json:"id" validate:"required"`
	Type        dashboard.ActivityType `json:"type" validate:"required"`
	Title       string                 `json:"title"`
	OccurredAt  time.Time              `json:"occurred_at"`
	XPGained    int                    `json:"xp_gained" validate:"gte=0"`
	CoinsGained int                    `json:"coins_gained" validate:"gte=0"`
}

func (r *ActivityRequest) Validate() error {
	return core.Validate.Struct(r)
}

func (r *ActivityRequest) activity() dashboard.DashboardActivity {
	occurredAt := r.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	return dashboard.DashboardActivity{
		ID:          core.CleanString(r.ID),
		Type:        r.Type,
		Title:       core.CleanString(r.Title),
		OccurredAt:  occurredAt,
		XPGained:    r.XPGained,
		CoinsGained: r.CoinsGained,
	}
}

type RewardRequest struct {
	Amount int `json:"amount" validate:"required,gt=0"`
}

func (r *RewardRequest) Validate() error {
	return core.Validate.Struct(r)
}

// ActivityLimitRequest only requires a value; the store owns the range rule.
type ActivityLimitRequest struct {
	Limit int `json:"limit" validate:"required"`
}

func (r *ActivityLimitRequest) Validate() error {
	return core.Validate.Struct(r)
}
