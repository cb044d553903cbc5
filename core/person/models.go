package person

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mckinnonberry/familyqa/core"
)

// Person ids. The family directory is fixed; there is no signup flow
// (newcomers go through account requests and are added by hand).
const (
	Eben    = "eben"
	Steph   = "steph"
	Lindy   = "lindy"
	Michael = "michael"
)

var (
	displayNames = map[string]string{
		Eben:    "Eben Copple",
		Steph:   "Stephanie Berry",
		Lindy:   "Lindy McKinnon",
		Michael: "Michael Berry",
	}

	// Answerers receive questions; Askers submit them.
	Answerers = []string{Eben, Steph}
	Askers    = []string{Lindy, Michael}
	All       = []string{Eben, Steph, Lindy, Michael}
)

type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Directory returns the fixed person set in display order.
func Directory() []Person {
	dir := make([]Person, 0, len(All))
	for _, id := range All {
		dir = append(dir, Person{ID: id, Name: displayNames[id]})
	}
	return dir
}

// DisplayName resolves a person id to their full name; unknown ids are
// returned as-is.
func DisplayName(id string) string {
	if name, ok := displayNames[id]; ok {
		return name
	}
	return id
}

func IsValid(id string) bool {
	_, ok := displayNames[id]
	return ok
}

func IsAnswerer(id string) bool {
	for _, a := range Answerers {
		if a == id {
			return true
		}
	}
	return false
}

// Pin is a person's stored PIN credential. The PIN itself is never persisted;
// only a bcrypt hash is.
type Pin struct {
	Person    string    `json:"person"`
	PinHash   []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

func (p *Pin) SetPIN(pin string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PinHash = hash
	return nil
}

func (p *Pin) CheckPIN(pin string) error {
	return bcrypt.CompareHashAndPassword(p.PinHash, []byte(pin))
}

// ChangePin contains the credentials needed to rotate a person's PIN.
type ChangePin struct {
	CurrentPin string `json:"current_pin" validate:"required,pin"`
	NewPin     string `json:"new_pin" validate:"required,pin"`
	ConfirmPin string `json:"confirm_pin" validate:"required,eqfield=NewPin"`
}

func (cp *ChangePin) Validate() error { return core.Validate.Struct(cp) }

// ResetPin carries an admin-issued replacement PIN.
type ResetPin struct {
	Pin string `json:"pin" validate:"required,pin"`
}

func (rp *ResetPin) Validate() error { return core.Validate.Struct(rp) }
