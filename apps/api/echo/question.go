package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mckinnonberry/familyqa/core/question"
)

type questionApi struct {
	svc *question.Service
}

// registerQuestionAPI mounts the question endpoints on an already
// person-scoped group.
func registerQuestionAPI(pg *echo.Group, svc *question.Service) {
	api := questionApi{svc: svc}

	qg := pg.Group("/questions")
	qg.GET("", api.submitted)
	qg.POST("", api.submit)
	qg.GET("/pending", api.pending)
	qg.GET("/answered", api.answered)

	dg := qg.Group("/:id")
	dg.POST("/answer", api.answer)
	dg.POST("/archive", api.archive)
	dg.POST("/follow-up", api.followUp)
}

func (api *questionApi) submit(ctx echo.Context) error {
	var data question.NewQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuestion")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	q, err := api.svc.Submit(ctx.Request().Context(), ctx.Param("person"), data)
	if err != nil {
		return errors.Wrap(err, "submitting question")
	}
	return ctx.JSON(http.StatusCreated, q)
}

func (api *questionApi) pending(ctx echo.Context) error {
	questions, err := api.svc.Pending(ctx.Request().Context(), ctx.Param("person"))
	if err != nil {
		return errors.Wrap(err, "querying pending questions")
	}
	if questions == nil {
		questions = []question.Question{}
	}
	return ctx.JSON(http.StatusOK, questions)
}

func (api *questionApi) answered(ctx echo.Context) error {
	questions, err := api.svc.Answered(ctx.Request().Context(), ctx.Param("person"))
	if err != nil {
		return errors.Wrap(err, "querying answered questions")
	}
	if questions == nil {
		questions = []question.Question{}
	}
	return ctx.JSON(http.StatusOK, questions)
}

func (api *questionApi) submitted(ctx echo.Context) error {
	archived, _ := strconv.ParseBool(ctx.QueryParam("archived"))

	questions, err := api.svc.Submitted(ctx.Request().Context(), ctx.Param("person"), archived)
	if err != nil {
		return errors.Wrap(err, "querying submitted questions")
	}
	if questions == nil {
		questions = []question.Question{}
	}
	return ctx.JSON(http.StatusOK, questions)
}

func (api *questionApi) answer(ctx echo.Context) error {
	var data question.AnswerQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AnswerQuestion")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	q, err := api.svc.Answer(ctx.Request().Context(), ctx.Param("person"), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == question.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "answering question")
	}
	return ctx.JSON(http.StatusOK, q)
}

func (api *questionApi) archive(ctx echo.Context) error {
	err := api.svc.Archive(ctx.Request().Context(), ctx.Param("person"), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == question.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "archiving question")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *questionApi) followUp(ctx echo.Context) error {
	var data question.FollowUpQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FollowUpQuestion")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	q, err := api.svc.FollowUp(ctx.Request().Context(), ctx.Param("person"), ctx.Param("id"), data)
	if err != nil {
		switch errors.Cause(err) {
		case question.ErrNotFound:
			return errHttpNotFound
		case question.ErrArchiveOriginal:
			// the follow-up stands even though the original is still visible
			return ctx.JSON(http.StatusCreated, FollowUpResponse{Question: q, OriginalArchived: false})
		}
		return errors.Wrap(err, "creating follow-up")
	}
	return ctx.JSON(http.StatusCreated, FollowUpResponse{Question: q, OriginalArchived: true})
}

// FollowUpResponse reports the created follow-up and whether the original
// question was archived along the way.
type FollowUpResponse struct {
	question.Question
	OriginalArchived bool `json:"original_archived"`
}
