package request

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mckinnonberry/familyqa/core"
)

var ErrNotFound = errors.New("account request not found")

type (
	Repository interface {
		CreateRequest(ctx context.Context, req AccountRequest) (AccountRequest, error)
		QueryAllRequests(ctx context.Context, ordering []core.DBOrdering) ([]AccountRequest, error)
		MarkRequestHandled(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit appends a new request. No deduplication against existing requests
// or persons; every submission is a row.
func (svc *Service) Submit(ctx context.Context, nr NewAccountRequest) (AccountRequest, error) {
	req := AccountRequest{
		FirstName: nr.FirstName,
		LastName:  nr.LastName,
		Phone:     null.NewString(nr.Phone, nr.Phone != ""),
		Email:     nr.Email,
		HowHeard:  null.NewString(nr.HowHeard, nr.HowHeard != ""),
		CreatedAt: time.Now().UTC(),
	}
	req, err := svc.repo.CreateRequest(ctx, req)
	if err != nil {
		return AccountRequest{}, pkgerrors.Wrap(err, "creating account request")
	}
	return req, nil
}

// QueryAll lists every request, newest first.
func (svc *Service) QueryAll(ctx context.Context) ([]AccountRequest, error) {
	return svc.repo.QueryAllRequests(ctx, []core.DBOrdering{{Field: "created_at"}})
}

func (svc *Service) MarkHandled(ctx context.Context, id string) error {
	if err := svc.repo.MarkRequestHandled(ctx, id); err != nil {
		if pkgerrors.Cause(err) == ErrNotFound {
			return err
		}
		return pkgerrors.Wrap(err, "marking account request handled")
	}
	return nil
}
