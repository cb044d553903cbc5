package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mckinnonberry/familyqa/core"
	"github.com/mckinnonberry/familyqa/core/question"
)

type notificationApi struct {
	notifier question.Notifier
}

func registerNotificationAPI(g *echo.Group, jwt echo.MiddlewareFunc, notifier question.Notifier) {
	api := notificationApi{notifier: notifier}

	ng := g.Group("/notifications", jwt)
	ng.POST("/question", api.question)
}

// question dispatches a new-question notification on demand. Dispatch is
// fail-closed; the response only reports whether a send happened.
func (api *notificationApi) question(ctx echo.Context) error {
	var data NotificationRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NotificationRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sent := false
	if api.notifier != nil {
		sent = api.notifier.NotifyNewQuestion(data.AssignedTo, data.Title, data.Description, data.SubmittedBy)
	}
	return ctx.JSON(http.StatusOK, NotificationResponse{Sent: sent})
}

type (
	NotificationRequest struct {
		AssignedTo  string `json:"assigned_to" validate:"required,answerer"`
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		SubmittedBy string `json:"submitted_by" validate:"required,person"`
	}

	NotificationResponse struct {
		Sent bool `json:"sent"`
	}
)

func (nr *NotificationRequest) Validate() error {
	nr.AssignedTo = core.CleanString(nr.AssignedTo, true /* lower */)
	nr.SubmittedBy = core.CleanString(nr.SubmittedBy, true /* lower */)
	nr.Title = core.CleanString(nr.Title)
	nr.Description = core.CleanString(nr.Description)
	return core.Validate.Struct(nr)
}
