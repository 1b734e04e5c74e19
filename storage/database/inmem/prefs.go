package inmemdb

import (
	"context"

	"github.com/trezcool/questboard/core/dashboard"
)

type preferenceRepository struct {
	db *preferenceTable
}

var _ dashboard.PreferenceRepository = (*preferenceRepository)(nil)

func NewPreferenceRepository(db *DB) dashboard.PreferenceRepository {
	return &preferenceRepository{db: db.prefs}
}

func (repo *preferenceRepository) GetPreferences(_ context.Context, userID string) (dashboard.Preferences, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	prefs, ok := repo.db.table[userID]
	if !ok {
		return dashboard.Preferences{}, dashboard.ErrPreferencesNotFound
	}
	return prefs, nil
}

func (repo *preferenceRepository) SavePreferences(_ context.Context, userID string, prefs dashboard.Preferences) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[userID] = prefs
	return nil
}
