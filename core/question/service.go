package question

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/mckinnonberry/familyqa/core"
)

var (
	ErrNotFound = errors.New("question not found")

	// ErrArchiveOriginal reports that a follow-up was created but archiving
	// the original failed. The new question stands; the two-step is
	// deliberately best-effort, not a transaction.
	ErrArchiveOriginal = errors.New("follow-up created but original could not be archived")
)

type (
	Repository interface {
		CreateQuestion(ctx context.Context, q Question) (Question, error)
		GetQuestion(ctx context.Context, id string) (Question, error)
		// FilterQuestions applies AND operation on available QueryFilter fields.
		FilterQuestions(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Question, error)
		// AnswerQuestion sets answer text, status and answered time; the
		// transition is one-way.
		AnswerQuestion(ctx context.Context, id, answerText string, answeredAt time.Time) (Question, error)
		// ArchiveQuestion flips the submitter-local archive flag.
		ArchiveQuestion(ctx context.Context, id string) error
	}

	// Notifier dispatches a new-question notification. It never fails the
	// caller; the bool only reports whether a send happened.
	Notifier interface {
		NotifyNewQuestion(assignedTo, title, description, submittedBy string) bool
	}

	Service struct {
		repo     Repository
		notifier Notifier
		logger   core.Logger
	}
)

func NewService(repo Repository, notifier Notifier, logger core.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// Submit inserts a pending, unarchived question and opportunistically
// notifies the assignee. Notification outcome never affects the insert.
func (svc *Service) Submit(ctx context.Context, submitter string, nq NewQuestion) (Question, error) {
	q := Question{
		AssignedTo:  nq.AssignedTo,
		SubmittedBy: submitter,
		Title:       nq.Title,
		Description: nq.Description,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	q, err := svc.repo.CreateQuestion(ctx, q)
	if err != nil {
		return Question{}, pkgerrors.Wrap(err, "creating question")
	}

	if svc.notifier != nil {
		if sent := svc.notifier.NotifyNewQuestion(q.AssignedTo, q.Title, q.Description, q.SubmittedBy); !sent {
			svc.logger.Warn("new-question notification not sent", map[string]interface{}{"assigned_to": q.AssignedTo})
		}
	}
	return q, nil
}

// Pending lists an assignee's unanswered questions, newest first.
func (svc *Service) Pending(ctx context.Context, assignee string) ([]Question, error) {
	return svc.repo.FilterQuestions(ctx,
		QueryFilter{AssignedTo: assignee, Status: StatusPending},
		[]core.DBOrdering{{Field: "created_at"}},
	)
}

// Answered lists an assignee's answered questions, most recently answered first.
func (svc *Service) Answered(ctx context.Context, assignee string) ([]Question, error) {
	return svc.repo.FilterQuestions(ctx,
		QueryFilter{AssignedTo: assignee, Status: StatusAnswered},
		[]core.DBOrdering{{Field: "answered_at"}},
	)
}

// Submitted lists a submitter's questions partitioned by the archive flag,
// newest first.
func (svc *Service) Submitted(ctx context.Context, submitter string, archived bool) ([]Question, error) {
	return svc.repo.FilterQuestions(ctx,
		QueryFilter{SubmittedBy: submitter, Archived: &archived},
		[]core.DBOrdering{{Field: "created_at"}},
	)
}

// Answer records the assignee's answer. Only the question's assignee may
// answer; anyone else sees ErrNotFound.
func (svc *Service) Answer(ctx context.Context, assignee, id string, aq AnswerQuestion) (Question, error) {
	q, err := svc.getOwned(ctx, id, assignee, "")
	if err != nil {
		return Question{}, err
	}
	q, err = svc.repo.AnswerQuestion(ctx, q.ID, aq.AnswerText, time.Now().UTC())
	if err != nil {
		return Question{}, pkgerrors.Wrap(err, "answering question")
	}
	return q, nil
}

// Archive hides a question from the submitter's default list. Submitter only.
func (svc *Service) Archive(ctx context.Context, submitter, id string) error {
	q, err := svc.getOwned(ctx, id, "", submitter)
	if err != nil {
		return err
	}
	if err = svc.repo.ArchiveQuestion(ctx, q.ID); err != nil {
		return pkgerrors.Wrap(err, "archiving question")
	}
	return nil
}

// FollowUp creates a new question to the original's assignee with a prefixed
// title, then best-effort archives the original. When archiving fails the
// created question is returned together with ErrArchiveOriginal.
func (svc *Service) FollowUp(ctx context.Context, submitter, id string, fq FollowUpQuestion) (Question, error) {
	orig, err := svc.getOwned(ctx, id, "", submitter)
	if err != nil {
		return Question{}, err
	}

	nq := Question{
		AssignedTo:  orig.AssignedTo,
		SubmittedBy: submitter,
		Title:       FollowUpPrefix + orig.Title,
		Description: fq.Description,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	created, err := svc.repo.CreateQuestion(ctx, nq)
	if err != nil {
		return Question{}, pkgerrors.Wrap(err, "creating follow-up")
	}

	if svc.notifier != nil {
		if sent := svc.notifier.NotifyNewQuestion(created.AssignedTo, created.Title, created.Description, created.SubmittedBy); !sent {
			svc.logger.Warn("follow-up notification not sent", map[string]interface{}{"assigned_to": created.AssignedTo})
		}
	}

	if err = svc.repo.ArchiveQuestion(ctx, orig.ID); err != nil {
		svc.logger.Error("archiving original after follow-up", err)
		return created, ErrArchiveOriginal
	}
	return created, nil
}

// getOwned fetches a question and hides it (ErrNotFound) from anyone who is
// not on the required side of it.
func (svc *Service) getOwned(ctx context.Context, id, assignee, submitter string) (Question, error) {
	q, err := svc.repo.GetQuestion(ctx, id)
	if err != nil {
		return Question{}, err
	}
	if assignee != "" && q.AssignedTo != assignee {
		return Question{}, ErrNotFound
	}
	if submitter != "" && q.SubmittedBy != submitter {
		return Question{}, ErrNotFound
	}
	return q, nil
}
