package pgrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mckinnonberry/familyqa/core"
	"github.com/mckinnonberry/familyqa/core/question"
)

const questionColumns = `id, assigned_to, submitted_by, title, description, status,
	answer_text, archived_by_submitter, created_at, answered_at`

type questionRow struct {
	ID                  string      `db:"id"`
	AssignedTo          string      `db:"assigned_to"`
	SubmittedBy         string      `db:"submitted_by"`
	Title               string      `db:"title"`
	Description         string      `db:"description"`
	Status              string      `db:"status"`
	AnswerText          null.String `db:"answer_text"`
	ArchivedBySubmitter bool        `db:"archived_by_submitter"`
	CreatedAt           time.Time   `db:"created_at"`
	AnsweredAt          null.Time   `db:"answered_at"`
}

func (r questionRow) toQuestion() question.Question {
	return question.Question{
		ID:                  r.ID,
		AssignedTo:          r.AssignedTo,
		SubmittedBy:         r.SubmittedBy,
		Title:               r.Title,
		Description:         r.Description,
		Status:              r.Status,
		AnswerText:          r.AnswerText,
		ArchivedBySubmitter: r.ArchivedBySubmitter,
		CreatedAt:           r.CreatedAt,
		AnsweredAt:          r.AnsweredAt,
	}
}

type questionRepository struct {
	db *sqlx.DB
}

var _ question.Repository = (*questionRepository)(nil) // interface compliance check

func NewQuestionRepository(db *sqlx.DB) *questionRepository {
	return &questionRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to question.ErrNotFound
func (repo questionRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return question.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo questionRepository) CreateQuestion(ctx context.Context, q question.Question) (question.Question, error) {
	q.ID = uuid.New().String()
	var row questionRow
	err := repo.db.GetContext(ctx, &row,
		`INSERT INTO questions (id, assigned_to, submitted_by, title, description, status, archived_by_submitter, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, false, $7)
		 RETURNING `+questionColumns,
		q.ID, q.AssignedTo, q.SubmittedBy, q.Title, q.Description, q.Status, q.CreatedAt)
	if err != nil {
		return question.Question{}, errors.Wrap(err, "inserting question")
	}
	return row.toQuestion(), nil
}

func (repo questionRepository) GetQuestion(ctx context.Context, id string) (question.Question, error) {
	if _, err := uuid.Parse(id); err != nil {
		return question.Question{}, question.ErrNotFound
	}
	var row questionRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	if err != nil {
		return question.Question{}, repo.trapNoRowsErr(err, "finding question")
	}
	return row.toQuestion(), nil
}

func (repo questionRepository) FilterQuestions(
	ctx context.Context,
	filter question.QueryFilter,
	ordering []core.DBOrdering,
) ([]question.Question, error) {
	var (
		conds []string
		args  []interface{}
	)
	addCond := func(col string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if filter.AssignedTo != "" {
		addCond("assigned_to", filter.AssignedTo)
	}
	if filter.SubmittedBy != "" {
		addCond("submitted_by", filter.SubmittedBy)
	}
	if filter.Status != "" {
		addCond("status", filter.Status)
	}
	if filter.Archived != nil {
		addCond("archived_by_submitter", *filter.Archived)
	}

	query := `SELECT ` + questionColumns + ` FROM questions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	if len(ordering) > 0 {
		orderList := make([]string, 0, len(ordering))
		for _, ord := range ordering {
			orderList = append(orderList, ord.String())
		}
		query += " ORDER BY " + strings.Join(orderList, ", ")
	}

	var rows []questionRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying questions")
	}
	questions := make([]question.Question, 0, len(rows))
	for _, r := range rows {
		questions = append(questions, r.toQuestion())
	}
	return questions, nil
}

func (repo questionRepository) AnswerQuestion(ctx context.Context, id, answerText string, answeredAt time.Time) (question.Question, error) {
	var row questionRow
	err := repo.db.GetContext(ctx, &row,
		`UPDATE questions SET answer_text = $2, status = $3, answered_at = $4
		 WHERE id = $1
		 RETURNING `+questionColumns,
		id, answerText, question.StatusAnswered, answeredAt)
	if err != nil {
		return question.Question{}, repo.trapNoRowsErr(err, "answering question")
	}
	return row.toQuestion(), nil
}

func (repo questionRepository) ArchiveQuestion(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE questions SET archived_by_submitter = true WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "archiving question")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return question.ErrNotFound
	}
	return nil
}
