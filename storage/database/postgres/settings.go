package pgrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mckinnonberry/familyqa/core/settings"
)

type settingsRow struct {
	Person             string      `db:"person"`
	PhoneType          string      `db:"phone_type"`
	NotificationEmail  null.String `db:"notification_email"`
	OnboardingComplete bool        `db:"onboarding_complete"`
	UpdatedAt          time.Time   `db:"updated_at"`
}

func (r settingsRow) toSettings() settings.Settings {
	return settings.Settings{
		Person:             r.Person,
		PhoneType:          r.PhoneType,
		NotificationEmail:  r.NotificationEmail,
		OnboardingComplete: r.OnboardingComplete,
		UpdatedAt:          r.UpdatedAt,
	}
}

type settingsRepository struct {
	db *sqlx.DB
}

var _ settings.Repository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *sqlx.DB) *settingsRepository {
	return &settingsRepository{db: db}
}

func (repo settingsRepository) GetSettings(ctx context.Context, personID string) (settings.Settings, error) {
	var row settingsRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT person, phone_type, notification_email, onboarding_complete, updated_at
		 FROM user_settings WHERE person = $1`, personID)
	if err != nil {
		if err == sql.ErrNoRows {
			return settings.Settings{}, settings.ErrNotFound
		}
		return settings.Settings{}, errors.Wrap(err, "finding settings")
	}
	return row.toSettings(), nil
}

func (repo settingsRepository) UpsertSettings(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	var row settingsRow
	err := repo.db.GetContext(ctx, &row,
		`INSERT INTO user_settings (person, phone_type, notification_email, onboarding_complete, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (person) DO UPDATE SET
			phone_type = EXCLUDED.phone_type,
			notification_email = EXCLUDED.notification_email,
			onboarding_complete = EXCLUDED.onboarding_complete,
			updated_at = EXCLUDED.updated_at
		 RETURNING person, phone_type, notification_email, onboarding_complete, updated_at`,
		s.Person, s.PhoneType, s.NotificationEmail, s.OnboardingComplete, s.UpdatedAt)
	if err != nil {
		return settings.Settings{}, errors.Wrap(err, "upserting settings")
	}
	return row.toSettings(), nil
}
