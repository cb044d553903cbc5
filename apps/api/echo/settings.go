package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mckinnonberry/familyqa/core/settings"
)

type settingsApi struct {
	svc *settings.Service
}

// registerSettingsAPI mounts the settings endpoints on an already
// person-scoped group.
func registerSettingsAPI(pg *echo.Group, svc *settings.Service) {
	api := settingsApi{svc: svc}

	pg.GET("/settings", api.retrieve)
	pg.PUT("/settings", api.update)
}

func (api *settingsApi) retrieve(ctx echo.Context) error {
	s, err := api.svc.Get(ctx.Request().Context(), ctx.Param("person"))
	if err != nil {
		return errors.Wrap(err, "getting settings")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *settingsApi) update(ctx echo.Context) error {
	var data settings.UpdateSettings
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSettings")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	s, err := api.svc.Save(ctx.Request().Context(), ctx.Param("person"), data)
	if err != nil {
		return errors.Wrap(err, "saving settings")
	}
	return ctx.JSON(http.StatusOK, s)
}
