package settings

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mckinnonberry/familyqa/core"
)

// Phone types. iPhone owners get iMessage directly; everyone else needs a
// notification email on file.
const (
	PhoneTypeIPhone = "iphone"
	PhoneTypeOther  = "other"
)

type Settings struct {
	Person             string      `json:"person"`
	PhoneType          string      `json:"phone_type"`
	NotificationEmail  null.String `json:"notification_email"`
	OnboardingComplete bool        `json:"onboarding_complete"`
	UpdatedAt          time.Time   `json:"updated_at"` // UTC
}

// NeedsOnboarding reports whether the one-time settings capture is still due.
func (s Settings) NeedsOnboarding() bool { return !s.OnboardingComplete }

// Defaults is what a person without a stored record gets.
func Defaults(personID string) Settings {
	return Settings{
		Person:    personID,
		PhoneType: PhoneTypeIPhone,
	}
}

// UpdateSettings is the onboarding/settings form payload.
type UpdateSettings struct {
	PhoneType         string `json:"phone_type" validate:"required,oneof=iphone other"`
	NotificationEmail string `json:"notification_email" validate:"omitempty,email"`
}

func (us *UpdateSettings) Validate() error {
	us.PhoneType = core.CleanString(us.PhoneType, true /* lower */)
	us.NotificationEmail = core.CleanString(us.NotificationEmail, true /* lower */)
	return core.Validate.Struct(us)
}
