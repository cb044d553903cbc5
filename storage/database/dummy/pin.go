package dummydb

import (
	"context"
	"sort"

	"github.com/mckinnonberry/familyqa/core/person"
)

type pinRepository struct {
	db *pinTable
}

var _ person.Repository = (*pinRepository)(nil) // interface compliance check

func NewPinRepository(db *DB) person.Repository {
	return &pinRepository{db: db.pin}
}

func (repo *pinRepository) GetPin(_ context.Context, personID string) (person.Pin, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if pin, ok := repo.db.table[personID]; ok {
		return *pin, nil
	}
	return person.Pin{}, person.ErrPinNotFound
}

func (repo *pinRepository) UpsertPin(_ context.Context, pin person.Pin) (person.Pin, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if orig, ok := repo.db.table[pin.Person]; ok {
		pin.CreatedAt = orig.CreatedAt
	}
	repo.db.table[pin.Person] = &pin
	return pin, nil
}

func (repo *pinRepository) QueryAllPins(_ context.Context) ([]person.Pin, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	pins := make([]person.Pin, 0, len(repo.db.table))
	for _, pin := range repo.db.table {
		pins = append(pins, *pin)
	}
	sort.Slice(pins, func(i, j int) bool { return pins[i].Person < pins[j].Person })
	return pins, nil
}
