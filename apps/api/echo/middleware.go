package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mckinnonberry/familyqa/core/person"
)

func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// personMiddleware guards person-scoped routes: the token subject must match
// the :person route param, admin passes everywhere. Unknown persons 404.
func personMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			personID := ctx.Param("person")
			if !person.IsValid(personID) {
				return errHttpNotFound
			}

			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.Subject == personID || claims.IsAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
