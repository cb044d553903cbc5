package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mckinnonberry/familyqa/core"
	"github.com/mckinnonberry/familyqa/core/person"
	"github.com/mckinnonberry/familyqa/core/question"
	"github.com/mckinnonberry/familyqa/core/settings"
)

type authApi struct {
	svc *person.Service
}

func registerAuthAPI(g *echo.Group, svc *person.Service) {
	api := authApi{svc: svc}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/admin", api.adminLogin)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := authenticate(ctx.Request().Context(), data.Person, data.Pin, api.svc)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *authApi) adminLogin(ctx echo.Context) error {
	var data AdminLoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AdminLoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := authenticateAdmin(data.Password)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

type personApi struct {
	svc *person.Service
}

func registerPersonAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	personSvc *person.Service,
	settingsSvc *settings.Service,
	questionSvc *question.Service,
) {
	api := personApi{svc: personSvc}

	// un-authed: the login screen needs the directory before any token exists
	g.GET("/persons", api.directory)

	pg := g.Group("/persons/:person", jwt, personMiddleware())
	pg.PUT("/pin", api.changePin)

	registerSettingsAPI(pg, settingsSvc)
	registerQuestionAPI(pg, questionSvc)
}

func (api *personApi) directory(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, person.Directory())
}

func (api *personApi) changePin(ctx echo.Context) error {
	var data person.ChangePin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChangePin")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.svc.Change(ctx.Request().Context(), ctx.Param("person"), data); err != nil {
		if _, ok := errors.Cause(err).(*core.ValidationError); ok {
			return err
		}
		return errors.Wrap(err, "changing pin")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	LoginRequest struct {
		Person string `json:"person" validate:"required"`
		Pin    string `json:"pin" validate:"required"`
	}

	AdminLoginRequest struct {
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Person = core.CleanString(lr.Person, true /* lower */)
	return core.Validate.Struct(lr)
}

func (ar *AdminLoginRequest) Validate() error {
	return core.Validate.Struct(ar)
}
