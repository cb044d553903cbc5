package question

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mckinnonberry/familyqa/core"
)

// Question statuses. Answering is one-way; archiving is a submitter-local
// flag orthogonal to status.
const (
	StatusPending  = "pending"
	StatusAnswered = "answered"
)

// FollowUpPrefix marks a question derived from an earlier answered one.
const FollowUpPrefix = "Follow-up: "

type Question struct {
	ID                  string      `json:"id"`
	AssignedTo          string      `json:"assigned_to"`
	SubmittedBy         string      `json:"submitted_by"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	Status              string      `json:"status"`
	AnswerText          null.String `json:"answer_text"`
	ArchivedBySubmitter bool        `json:"archived_by_submitter"`
	CreatedAt           time.Time   `json:"created_at"` // UTC
	AnsweredAt          null.Time   `json:"answered_at"`
}

func (q Question) IsAnswered() bool { return q.Status == StatusAnswered }

// NewQuestion contains information needed to submit a Question.
type NewQuestion struct {
	AssignedTo  string `json:"assigned_to" validate:"required,answerer"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

func (nq *NewQuestion) Validate() error {
	nq.AssignedTo = core.CleanString(nq.AssignedTo, true /* lower */)
	nq.Title = core.CleanString(nq.Title)
	nq.Description = core.CleanString(nq.Description)
	return core.Validate.Struct(nq)
}

// AnswerQuestion carries the assignee's answer text.
type AnswerQuestion struct {
	AnswerText string `json:"answer_text" validate:"required"`
}

func (aq *AnswerQuestion) Validate() error {
	aq.AnswerText = core.CleanString(aq.AnswerText)
	return core.Validate.Struct(aq)
}

// FollowUpQuestion carries the body of a follow-up; the title and assignee
// derive from the original question.
type FollowUpQuestion struct {
	Description string `json:"description" validate:"required"`
}

func (fq *FollowUpQuestion) Validate() error {
	fq.Description = core.CleanString(fq.Description)
	return core.Validate.Struct(fq)
}

// QueryFilter applies AND on its set fields.
type QueryFilter struct {
	AssignedTo  string
	SubmittedBy string
	Status      string
	Archived    *bool
}
