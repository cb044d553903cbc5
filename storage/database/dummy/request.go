package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mckinnonberry/familyqa/core"
	"github.com/mckinnonberry/familyqa/core/request"
)

type requestRepository struct {
	db *requestTable
}

var _ request.Repository = (*requestRepository)(nil) // interface compliance check

func NewRequestRepository(db *DB) request.Repository {
	return &requestRepository{db: db.request}
}

func (repo *requestRepository) CreateRequest(_ context.Context, req request.AccountRequest) (request.AccountRequest, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	req.ID = uuid.New().String()
	repo.db.table[req.ID] = &req
	return req, nil
}

func (repo *requestRepository) QueryAllRequests(_ context.Context, ordering []core.DBOrdering) ([]request.AccountRequest, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	reqs := make([]request.AccountRequest, 0, len(repo.db.table))
	for _, req := range repo.db.table {
		reqs = append(reqs, *req)
	}
	for _, ord := range ordering {
		asc := ord.Ascending
		sort.SliceStable(reqs, func(i, j int) bool {
			if asc {
				return reqs[i].CreatedAt.Before(reqs[j].CreatedAt)
			}
			return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
		})
	}
	return reqs, nil
}

func (repo *requestRepository) MarkRequestHandled(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	req, ok := repo.db.table[id]
	if !ok {
		return request.ErrNotFound
	}
	req.Handled = true
	return nil
}
