package settings

import (
	"github.com/go-playground/validator/v10"

	"github.com/mckinnonberry/familyqa/core"
)

var (
	notifEmailRequiredTag  = "notifemailrequired"
	notifEmailRequiredText = "notification email is required for non-iPhone phones"
)

func init() {
	core.Validate.RegisterStructValidation(updateSettingsStructValidation, UpdateSettings{})
	core.RegisterCustomTranslation(notifEmailRequiredTag, notifEmailRequiredText)
}

// updateSettingsStructValidation requires a notification email whenever the
// phone type is "other".
func updateSettingsStructValidation(sl validator.StructLevel) {
	us, ok := sl.Current().Interface().(UpdateSettings)
	if !ok {
		return
	}
	if us.PhoneType == PhoneTypeOther && us.NotificationEmail == "" {
		sl.ReportError(us.NotificationEmail, "notification_email", "NotificationEmail", notifEmailRequiredTag, "")
	}
}
