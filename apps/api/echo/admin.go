package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mckinnonberry/familyqa/core/person"
	"github.com/mckinnonberry/familyqa/core/request"
)

type adminApi struct {
	personSvc  *person.Service
	requestSvc *request.Service
}

func registerAdminAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	personSvc *person.Service,
	requestSvc *request.Service,
) {
	api := adminApi{personSvc: personSvc, requestSvc: requestSvc}

	ag := g.Group("/admin", jwt, adminMiddleware())
	ag.GET("/pins", api.queryPins)
	ag.PUT("/pins/:person", api.resetPin)
	ag.GET("/account-requests", api.queryRequests)
	ag.POST("/account-requests/:id/handled", api.markRequestHandled)
}

// queryPins lists PIN records; hashes never serialize, so this only exposes
// who has a PIN and when it last changed.
func (api *adminApi) queryPins(ctx echo.Context) error {
	pins, err := api.personSvc.QueryAllPins(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying pins")
	}
	if pins == nil {
		pins = []person.Pin{}
	}
	return ctx.JSON(http.StatusOK, pins)
}

func (api *adminApi) resetPin(ctx echo.Context) error {
	var data person.ResetPin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetPin")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.personSvc.Reset(ctx.Request().Context(), ctx.Param("person"), data.Pin); err != nil {
		if errors.Cause(err) == person.ErrUnknownPerson {
			return errHttpNotFound
		}
		return errors.Wrap(err, "resetting pin")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *adminApi) queryRequests(ctx echo.Context) error {
	reqs, err := api.requestSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying account requests")
	}
	if reqs == nil {
		reqs = []request.AccountRequest{}
	}
	return ctx.JSON(http.StatusOK, reqs)
}

func (api *adminApi) markRequestHandled(ctx echo.Context) error {
	if err := api.requestSvc.MarkHandled(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == request.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "marking account request handled")
	}
	return ctx.NoContent(http.StatusNoContent)
}
