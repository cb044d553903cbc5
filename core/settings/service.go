package settings

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var ErrNotFound = errors.New("settings not found")

type (
	Repository interface {
		GetSettings(ctx context.Context, person string) (Settings, error)
		// UpsertSettings replaces any existing record for Settings.Person.
		UpsertSettings(ctx context.Context, s Settings) (Settings, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the person's stored settings, or defaults when no record
// exists. A failed lookup is treated the same as a missing record: the
// person just goes through onboarding again.
func (svc *Service) Get(ctx context.Context, personID string) (Settings, error) {
	s, err := svc.repo.GetSettings(ctx, personID)
	if err != nil {
		return Defaults(personID), nil
	}
	return s, nil
}

// Save upserts the person's settings and marks onboarding complete. With an
// iPhone the notification email is stored as absent regardless of input.
func (svc *Service) Save(ctx context.Context, personID string, us UpdateSettings) (Settings, error) {
	s := Settings{
		Person:             personID,
		PhoneType:          us.PhoneType,
		OnboardingComplete: true,
		UpdatedAt:          time.Now().UTC(),
	}
	if us.PhoneType == PhoneTypeOther {
		s.NotificationEmail = null.StringFrom(us.NotificationEmail)
	}

	s, err := svc.repo.UpsertSettings(ctx, s)
	if err != nil {
		return Settings{}, pkgerrors.Wrap(err, "saving settings")
	}
	return s, nil
}
