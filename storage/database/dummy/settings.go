package dummydb

import (
	"context"

	"github.com/mckinnonberry/familyqa/core/settings"
)

type settingsRepository struct {
	db *settingsTable
}

var _ settings.Repository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *DB) settings.Repository {
	return &settingsRepository{db: db.settings}
}

func (repo *settingsRepository) GetSettings(_ context.Context, personID string) (settings.Settings, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.table[personID]; ok {
		return *s, nil
	}
	return settings.Settings{}, settings.ErrNotFound
}

func (repo *settingsRepository) UpsertSettings(_ context.Context, s settings.Settings) (settings.Settings, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[s.Person] = &s
	return s, nil
}
