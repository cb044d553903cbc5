package pgrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mckinnonberry/familyqa/core/person"
)

type pinRow struct {
	Person    string    `db:"person"`
	PinHash   []byte    `db:"pin_hash"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r pinRow) toPin() person.Pin {
	return person.Pin{
		Person:    r.Person,
		PinHash:   r.PinHash,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type pinRepository struct {
	db *sqlx.DB
}

var _ person.Repository = (*pinRepository)(nil) // interface compliance check

func NewPinRepository(db *sqlx.DB) *pinRepository {
	return &pinRepository{db: db}
}

func (repo pinRepository) GetPin(ctx context.Context, personID string) (person.Pin, error) {
	var row pinRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT person, pin_hash, created_at, updated_at FROM pins WHERE person = $1`, personID)
	if err != nil {
		if err == sql.ErrNoRows {
			return person.Pin{}, person.ErrPinNotFound
		}
		return person.Pin{}, errors.Wrap(err, "finding pin")
	}
	return row.toPin(), nil
}

func (repo pinRepository) UpsertPin(ctx context.Context, pin person.Pin) (person.Pin, error) {
	var row pinRow
	err := repo.db.GetContext(ctx, &row,
		`INSERT INTO pins (person, pin_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (person) DO UPDATE SET pin_hash = EXCLUDED.pin_hash, updated_at = EXCLUDED.updated_at
		 RETURNING person, pin_hash, created_at, updated_at`,
		pin.Person, pin.PinHash, pin.CreatedAt, pin.UpdatedAt)
	if err != nil {
		return person.Pin{}, errors.Wrap(err, "upserting pin")
	}
	return row.toPin(), nil
}

func (repo pinRepository) QueryAllPins(ctx context.Context) ([]person.Pin, error) {
	var rows []pinRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT person, pin_hash, created_at, updated_at FROM pins ORDER BY person`)
	if err != nil {
		return nil, errors.Wrap(err, "querying pins")
	}
	pins := make([]person.Pin, 0, len(rows))
	for _, r := range rows {
		pins = append(pins, r.toPin())
	}
	return pins, nil
}
