package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/questboard/core"
	"github.com/trezcool/questboard/core/dashboard"
)

const (
	getPrefsQuery = `
SELECT user_id, show_completed_quests, activity_limit, filters
FROM dashboard_preferences
WHERE user_id = $1`

	upsertPrefsQuery = `
INSERT INTO dashboard_preferences (user_id, show_completed_quests, activity_limit, filters, updated_at)
VALUES (:user_id, :show_completed_quests, :activity_limit, :filters, NOW())
ON CONFLICT (user_id) DO UPDATE
SET show_completed_quests = EXCLUDED.show_completed_quests,
    activity_limit        = EXCLUDED.activity_limit,
    filters               = EXCLUDED.filters,
    updated_at            = NOW()`
)

type preferenceRow struct {
	UserID              string    `db:"user_id"`
	ShowCompletedQuests bool      `db:"show_completed_quests"`
	ActivityLimit       int       `db:"activity_limit"`
	Filters             null.JSON `db:"filters"` // NULL when no filter is set
}

type preferenceRepository struct {
	db *sqlx.DB
}

var _ dashboard.PreferenceRepository = (*preferenceRepository)(nil)

func NewPreferenceRepository(db *sql.DB) dashboard.PreferenceRepository {
	return &preferenceRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo *preferenceRepository) GetPreferences(ctx context.Context, userID string) (dashboard.Preferences, error) {
	var row preferenceRow
	if err := repo.db.GetContext(ctx, &row, getPrefsQuery, userID); err != nil {
		if err == sql.ErrNoRows {
			return dashboard.Preferences{}, dashboard.ErrPreferencesNotFound
		}
		return dashboard.Preferences{}, wrapDBErr(err, "getting preferences")
	}

	prefs := dashboard.Preferences{
		ShowCompletedQuests: row.ShowCompletedQuests,
		ActivityLimit:       row.ActivityLimit,
	}
	if row.Filters.Valid {
		if err := json.Unmarshal(row.Filters.JSON, &prefs.Filters); err != nil {
			return dashboard.Preferences{}, errors.Wrap(err, "decoding filters")
		}
	}
	return prefs, nil
}

func (repo *preferenceRepository) SavePreferences(ctx context.Context, userID string, prefs dashboard.Preferences) error {
	row := preferenceRow{
		UserID:              userID,
		ShowCompletedQuests: prefs.ShowCompletedQuests,
		ActivityLimit:       prefs.ActivityLimit,
	}
	if !prefs.Filters.IsEmpty() {
		raw, err := json.Marshal(prefs.Filters)
		if err != nil {
			return errors.Wrap(err, "encoding filters")
		}
		row.Filters = null.JSONFrom(raw)
	}

	if _, err := repo.db.NamedExecContext(ctx, upsertPrefsQuery, row); err != nil {
		return wrapDBErr(err, "saving preferences")
	}
	return nil
}

// wrapDBErr translates driver-level failures into the app error vocabulary.
// A dead connection cannot be recovered from here and becomes a shutdown
// error so the server stops gracefully instead of limping on.
func wrapDBErr(err error, msg string) error {
	if err == sql.ErrConnDone {
		return core.NewShutdownError(msg + ": " + err.Error())
	}
	return errors.Wrap(err, msg)
}
