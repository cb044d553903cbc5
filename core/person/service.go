package person

import (
	"context"
	"errors"
	"time"

	"github.com/mckinnonberry/familyqa/core"
)

var (
	// ErrPinIncorrect covers a mismatch, a missing record and a failed
	// lookup alike; callers cannot tell them apart.
	ErrPinIncorrect = errors.New("incorrect PIN")

	ErrUnknownPerson = errors.New("unknown person")

	// ErrPinNotFound is the repository's "no record" error; Verify folds it
	// into ErrPinIncorrect.
	ErrPinNotFound = errors.New("PIN not set")

	errCurrentPinText = "current PIN is incorrect"
)

type (
	Repository interface {
		GetPin(ctx context.Context, person string) (Pin, error)
		// UpsertPin replaces any existing record for Pin.Person.
		UpsertPin(ctx context.Context, pin Pin) (Pin, error)
		QueryAllPins(ctx context.Context) ([]Pin, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Verify checks a 4-digit candidate against the person's stored PIN.
// Any failure - no record, lookup error, mismatch - yields ErrPinIncorrect.
func (svc *Service) Verify(ctx context.Context, personID, pin string) error {
	if !IsValid(personID) {
		return ErrPinIncorrect
	}
	rec, err := svc.repo.GetPin(ctx, personID)
	if err != nil {
		return ErrPinIncorrect
	}
	if err = rec.CheckPIN(pin); err != nil {
		return ErrPinIncorrect
	}
	return nil
}

// Change rotates a person's PIN after verifying the current one. A failed
// verification mutates nothing.
func (svc *Service) Change(ctx context.Context, personID string, cp ChangePin) error {
	if err := svc.Verify(ctx, personID, cp.CurrentPin); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "current_pin", Error: errCurrentPinText})
	}
	return svc.write(ctx, personID, cp.NewPin)
}

// Reset unconditionally replaces a person's PIN. Admin only.
func (svc *Service) Reset(ctx context.Context, personID, pin string) error {
	if !IsValid(personID) {
		return ErrUnknownPerson
	}
	return svc.write(ctx, personID, pin)
}

func (svc *Service) QueryAllPins(ctx context.Context) ([]Pin, error) {
	return svc.repo.QueryAllPins(ctx)
}

func (svc *Service) write(ctx context.Context, personID, pin string) error {
	now := time.Now().UTC()
	rec := Pin{
		Person:    personID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := rec.SetPIN(pin); err != nil {
		return err
	}
	_, err := svc.repo.UpsertPin(ctx, rec)
	return err
}
