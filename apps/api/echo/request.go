package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mckinnonberry/familyqa/core/request"
)

type requestApi struct {
	svc *request.Service
}

func registerRequestAPI(g *echo.Group, svc *request.Service) {
	api := requestApi{svc: svc}

	// public intake; prospective members have no token
	g.POST("/account-requests", api.create)
}

func (api *requestApi) create(ctx echo.Context) error {
	var data request.NewAccountRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAccountRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	req, err := api.svc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "submitting account request")
	}
	return ctx.JSON(http.StatusCreated, req)
}
