package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/mckinnonberry/familyqa/core"
	"github.com/mckinnonberry/familyqa/core/question"
)

type questionRepository struct {
	db *questionTable
}

var _ question.Repository = (*questionRepository)(nil) // interface compliance check

func NewQuestionRepository(db *DB) question.Repository {
	return &questionRepository{db: db.question}
}

func (repo *questionRepository) query() []question.Question {
	questions := make([]question.Question, 0, len(repo.db.table))
	for _, q := range repo.db.table {
		questions = append(questions, *q)
	}
	return questions
}

func (repo *questionRepository) CreateQuestion(_ context.Context, q question.Question) (question.Question, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	q.ID = uuid.New().String()
	repo.db.table[q.ID] = &q
	return q, nil
}

func (repo *questionRepository) GetQuestion(_ context.Context, id string) (question.Question, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if q, ok := repo.db.table[id]; ok {
		return *q, nil
	}
	return question.Question{}, question.ErrNotFound
}

func (repo *questionRepository) FilterQuestions(
	_ context.Context,
	filter question.QueryFilter,
	ordering []core.DBOrdering,
) ([]question.Question, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	questions := repo.query()

	if filter.AssignedTo != "" {
		var filtered []question.Question
		for _, q := range questions {
			if q.AssignedTo == filter.AssignedTo {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}
	if questions != nil && filter.SubmittedBy != "" {
		var filtered []question.Question
		for _, q := range questions {
			if q.SubmittedBy == filter.SubmittedBy {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}
	if questions != nil && filter.Status != "" {
		var filtered []question.Question
		for _, q := range questions {
			if q.Status == filter.Status {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}
	if questions != nil && filter.Archived != nil {
		var filtered []question.Question
		for _, q := range questions {
			if q.ArchivedBySubmitter == *filter.Archived {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}

	for _, ord := range ordering {
		sortQuestions(questions, ord)
	}
	return questions, nil
}

func sortQuestions(questions []question.Question, ord core.DBOrdering) {
	key := func(q question.Question) time.Time {
		if ord.Field == "answered_at" {
			return q.AnsweredAt.Time
		}
		return q.CreatedAt
	}
	sort.SliceStable(questions, func(i, j int) bool {
		if ord.Ascending {
			return key(questions[i]).Before(key(questions[j]))
		}
		return key(questions[i]).After(key(questions[j]))
	})
}

func (repo *questionRepository) AnswerQuestion(_ context.Context, id, answerText string, answeredAt time.Time) (question.Question, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	q, ok := repo.db.table[id]
	if !ok {
		return question.Question{}, question.ErrNotFound
	}
	q.AnswerText = null.StringFrom(answerText)
	q.Status = question.StatusAnswered
	q.AnsweredAt = null.TimeFrom(answeredAt)
	return *q, nil
}

func (repo *questionRepository) ArchiveQuestion(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	q, ok := repo.db.table[id]
	if !ok {
		return question.ErrNotFound
	}
	q.ArchivedBySubmitter = true
	return nil
}
