package request

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mckinnonberry/familyqa/core"
)

// AccountRequest is a public ask-to-join record. Append-only from the public
// side; the admin flips Handled once dealt with.
type AccountRequest struct {
	ID        string      `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Phone     null.String `json:"phone"`
	Email     string      `json:"email"`
	HowHeard  null.String `json:"how_heard"`
	Handled   bool        `json:"handled"`
	CreatedAt time.Time   `json:"created_at"` // UTC
}

// NewAccountRequest contains the public intake form fields.
type NewAccountRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"required,email"`
	HowHeard  string `json:"how_heard"`
}

func (nr *NewAccountRequest) Validate() error {
	nr.FirstName = core.CleanString(nr.FirstName)
	nr.LastName = core.CleanString(nr.LastName)
	nr.Phone = core.CleanString(nr.Phone)
	nr.Email = core.CleanString(nr.Email, true /* lower */)
	nr.HowHeard = core.CleanString(nr.HowHeard)
	return core.Validate.Struct(nr)
}
