package person

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/mckinnonberry/familyqa/core"
)

var (
	pinTag   = "pin"
	pinText  = "PIN must be exactly 4 digits"
	pinRegex = regexp.MustCompile(`^\d{4}$`)

	personTag  = "person"
	personText = "unknown person"

	answererTag  = "answerer"
	answererText = "questions can only be assigned to Eben or Steph"

	eqPinText = "new PIN entries do not match"
)

func init() {
	_ = core.Validate.RegisterValidation(pinTag, pinValidation)
	core.RegisterCustomTranslation(pinTag, pinText)

	_ = core.Validate.RegisterValidation(personTag, personValidation)
	core.RegisterCustomTranslation(personTag, personText)

	_ = core.Validate.RegisterValidation(answererTag, answererValidation)
	core.RegisterCustomTranslation(answererTag, answererText)

	core.RegisterCustomTranslation("eqfield", eqPinText, true)
}

func pinValidation(fl validator.FieldLevel) bool {
	return pinRegex.MatchString(fl.Field().String())
}

func personValidation(fl validator.FieldLevel) bool {
	return IsValid(fl.Field().String())
}

func answererValidation(fl validator.FieldLevel) bool {
	return IsAnswerer(fl.Field().String())
}
