package pgrepos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mckinnonberry/familyqa/core"
	"github.com/mckinnonberry/familyqa/core/request"
)

const requestColumns = `id, first_name, last_name, phone, email, how_heard, handled, created_at`

type requestRow struct {
	ID        string      `db:"id"`
	FirstName string      `db:"first_name"`
	LastName  string      `db:"last_name"`
	Phone     null.String `db:"phone"`
	Email     string      `db:"email"`
	HowHeard  null.String `db:"how_heard"`
	Handled   bool        `db:"handled"`
	CreatedAt time.Time   `db:"created_at"`
}

func (r requestRow) toRequest() request.AccountRequest {
	return request.AccountRequest{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Email:     r.Email,
		HowHeard:  r.HowHeard,
		Handled:   r.Handled,
		CreatedAt: r.CreatedAt,
	}
}

type requestRepository struct {
	db *sqlx.DB
}

var _ request.Repository = (*requestRepository)(nil) // interface compliance check

func NewRequestRepository(db *sqlx.DB) *requestRepository {
	return &requestRepository{db: db}
}

func (repo requestRepository) CreateRequest(ctx context.Context, req request.AccountRequest) (request.AccountRequest, error) {
	req.ID = uuid.New().String()
	var row requestRow
	err := repo.db.GetContext(ctx, &row,
		`INSERT INTO account_requests (id, first_name, last_name, phone, email, how_heard, handled, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, false, $7)
		 RETURNING `+requestColumns,
		req.ID, req.FirstName, req.LastName, req.Phone, req.Email, req.HowHeard, req.CreatedAt)
	if err != nil {
		return request.AccountRequest{}, errors.Wrap(err, "inserting account request")
	}
	return row.toRequest(), nil
}

func (repo requestRepository) QueryAllRequests(ctx context.Context, ordering []core.DBOrdering) ([]request.AccountRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM account_requests`
	if len(ordering) > 0 {
		orderList := make([]string, 0, len(ordering))
		for _, ord := range ordering {
			orderList = append(orderList, ord.String())
		}
		query += " ORDER BY " + strings.Join(orderList, ", ")
	}

	var rows []requestRow
	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying account requests")
	}
	reqs := make([]request.AccountRequest, 0, len(rows))
	for _, r := range rows {
		reqs = append(reqs, r.toRequest())
	}
	return reqs, nil
}

func (repo requestRepository) MarkRequestHandled(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return request.ErrNotFound
	}
	res, err := repo.db.ExecContext(ctx,
		`UPDATE account_requests SET handled = true WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "marking account request handled")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return request.ErrNotFound
	}
	return nil
}
