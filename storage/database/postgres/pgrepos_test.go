package pgrepos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mckinnonberry/familyqa/core"
	"github.com/mckinnonberry/familyqa/core/person"
	"github.com/mckinnonberry/familyqa/core/question"
	"github.com/mckinnonberry/familyqa/core/request"
	"github.com/mckinnonberry/familyqa/core/settings"
)

// newMockDB creates a sqlmock-backed sqlx.DB with automatic cleanup and
// expectation checking.
func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		mockDB.Close()
	})
	return sqlx.NewDb(mockDB, "postgres"), mock
}

var pinCols = []string{"person", "pin_hash", "created_at", "updated_at"}

func TestPinRepositoryGetPin(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPinRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT person, pin_hash, created_at, updated_at FROM pins WHERE person = \\$1").
		WithArgs(person.Eben).
		WillReturnRows(sqlmock.NewRows(pinCols).AddRow(person.Eben, []byte("$2a$hash"), now, now))

	pin, err := repo.GetPin(context.Background(), person.Eben)
	require.NoError(t, err)
	assert.Equal(t, person.Eben, pin.Person)
	assert.Equal(t, []byte("$2a$hash"), pin.PinHash)
}

func TestPinRepositoryGetPinNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPinRepository(db)

	mock.ExpectQuery("SELECT person, pin_hash, created_at, updated_at FROM pins WHERE person = \\$1").
		WithArgs(person.Lindy).
		WillReturnRows(sqlmock.NewRows(pinCols))

	_, err := repo.GetPin(context.Background(), person.Lindy)
	assert.Equal(t, person.ErrPinNotFound, err)
}

func TestPinRepositoryUpsertPin(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPinRepository(db)
	now := time.Now().UTC()
	pin := person.Pin{Person: person.Steph, PinHash: []byte("hash"), CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery("INSERT INTO pins").
		WithArgs(person.Steph, []byte("hash"), now, now).
		WillReturnRows(sqlmock.NewRows(pinCols).AddRow(person.Steph, []byte("hash"), now, now))

	got, err := repo.UpsertPin(context.Background(), pin)
	require.NoError(t, err)
	assert.Equal(t, pin, got)
}

func TestPinRepositoryQueryAllPins(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPinRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT person, pin_hash, created_at, updated_at FROM pins ORDER BY person").
		WillReturnRows(sqlmock.NewRows(pinCols).
			AddRow(person.Eben, []byte("h1"), now, now).
			AddRow(person.Lindy, []byte("h2"), now, now))

	pins, err := repo.QueryAllPins(context.Background())
	require.NoError(t, err)
	require.Len(t, pins, 2)
	assert.Equal(t, person.Eben, pins[0].Person)
	assert.Equal(t, person.Lindy, pins[1].Person)
}

var questionCols = []string{
	"id", "assigned_to", "submitted_by", "title", "description", "status",
	"answer_text", "archived_by_submitter", "created_at", "answered_at",
}

func TestQuestionRepositoryCreateQuestion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuestionRepository(db)
	now := time.Now().UTC()
	q := question.Question{
		AssignedTo:  person.Eben,
		SubmittedBy: person.Lindy,
		Title:       "Garden",
		Description: "How do I prune roses?",
		Status:      question.StatusPending,
		CreatedAt:   now,
	}

	mock.ExpectQuery("INSERT INTO questions").
		WithArgs(sqlmock.AnyArg(), person.Eben, person.Lindy, "Garden", "How do I prune roses?", question.StatusPending, now).
		WillReturnRows(sqlmock.NewRows(questionCols).
			AddRow("f7f1a2c2-0000-0000-0000-000000000001", person.Eben, person.Lindy,
				"Garden", "How do I prune roses?", question.StatusPending, nil, false, now, nil))

	created, err := repo.CreateQuestion(context.Background(), q)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, question.StatusPending, created.Status)
	assert.False(t, created.IsAnswered())
}

func TestQuestionRepositoryGetQuestionBadID(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewQuestionRepository(db)

	// malformed ids never hit the database
	_, err := repo.GetQuestion(context.Background(), "not-a-uuid")
	assert.Equal(t, question.ErrNotFound, err)
}

func TestQuestionRepositoryFilterQuestions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuestionRepository(db)
	now := time.Now().UTC()
	archived := false

	mock.ExpectQuery(`SELECT .+ FROM questions WHERE assigned_to = \$1 AND status = \$2 AND archived_by_submitter = \$3 ORDER BY created_at DESC`).
		WithArgs(person.Eben, question.StatusPending, false).
		WillReturnRows(sqlmock.NewRows(questionCols).
			AddRow("f7f1a2c2-0000-0000-0000-000000000001", person.Eben, person.Lindy,
				"Garden", "How do I prune roses?", question.StatusPending, nil, false, now, nil))

	questions, err := repo.FilterQuestions(context.Background(), question.QueryFilter{
		AssignedTo: person.Eben,
		Status:     question.StatusPending,
		Archived:   &archived,
	}, []core.DBOrdering{{Field: "created_at"}})
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, person.Lindy, questions[0].SubmittedBy)
}

func TestQuestionRepositoryAnswerQuestion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuestionRepository(db)
	now := time.Now().UTC()
	id := "f7f1a2c2-0000-0000-0000-000000000001"

	mock.ExpectQuery("UPDATE questions SET answer_text = \\$2, status = \\$3, answered_at = \\$4").
		WithArgs(id, "Cut above the bud.", question.StatusAnswered, now).
		WillReturnRows(sqlmock.NewRows(questionCols).
			AddRow(id, person.Eben, person.Lindy, "Garden", "How do I prune roses?",
				question.StatusAnswered, "Cut above the bud.", false, now, now))

	answered, err := repo.AnswerQuestion(context.Background(), id, "Cut above the bud.", now)
	require.NoError(t, err)
	assert.True(t, answered.IsAnswered())
	assert.Equal(t, "Cut above the bud.", answered.AnswerText.String)
}

func TestQuestionRepositoryArchiveQuestionNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuestionRepository(db)
	id := "f7f1a2c2-0000-0000-0000-000000000009"

	mock.ExpectExec("UPDATE questions SET archived_by_submitter = true").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ArchiveQuestion(context.Background(), id)
	assert.Equal(t, question.ErrNotFound, err)
}

var settingsCols = []string{"person", "phone_type", "notification_email", "onboarding_complete", "updated_at"}

func TestSettingsRepositoryGetSettingsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db)

	mock.ExpectQuery("SELECT person, phone_type, notification_email, onboarding_complete, updated_at").
		WithArgs(person.Michael).
		WillReturnRows(sqlmock.NewRows(settingsCols))

	_, err := repo.GetSettings(context.Background(), person.Michael)
	assert.Equal(t, settings.ErrNotFound, err)
}

func TestSettingsRepositoryUpsertSettings(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db)
	now := time.Now().UTC()
	s := settings.Settings{
		Person:             person.Michael,
		PhoneType:          settings.PhoneTypeOther,
		OnboardingComplete: true,
		UpdatedAt:          now,
	}
	s.NotificationEmail.SetValid("michael@example.com")

	mock.ExpectQuery("INSERT INTO user_settings").
		WithArgs(person.Michael, settings.PhoneTypeOther, s.NotificationEmail, true, now).
		WillReturnRows(sqlmock.NewRows(settingsCols).
			AddRow(person.Michael, settings.PhoneTypeOther, "michael@example.com", true, now))

	got, err := repo.UpsertSettings(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, got.OnboardingComplete)
	assert.Equal(t, "michael@example.com", got.NotificationEmail.String)
}

var requestCols = []string{"id", "first_name", "last_name", "phone", "email", "how_heard", "handled", "created_at"}

func TestRequestRepositoryCreateRequest(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRequestRepository(db)
	now := time.Now().UTC()
	req := request.AccountRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		CreatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO account_requests").
		WithArgs(sqlmock.AnyArg(), "Ada", "Lovelace", req.Phone, "ada@example.com", req.HowHeard, now).
		WillReturnRows(sqlmock.NewRows(requestCols).
			AddRow("f7f1a2c2-0000-0000-0000-000000000002", "Ada", "Lovelace", nil, "ada@example.com", nil, false, now))

	created, err := repo.CreateRequest(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Handled)
}

func TestRequestRepositoryQueryAllRequests(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRequestRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .+ FROM account_requests ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(requestCols).
			AddRow("f7f1a2c2-0000-0000-0000-000000000002", "Ada", "Lovelace", nil, "ada@example.com", nil, false, now))

	reqs, err := repo.QueryAllRequests(context.Background(), []core.DBOrdering{{Field: "created_at"}})
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "Ada", reqs[0].FirstName)
}

func TestRequestRepositoryMarkRequestHandled(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRequestRepository(db)
	id := "f7f1a2c2-0000-0000-0000-000000000002"

	mock.ExpectExec("UPDATE account_requests SET handled = true").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkRequestHandled(context.Background(), id))
}

func TestRequestRepositoryMarkRequestHandledBadID(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewRequestRepository(db)

	err := repo.MarkRequestHandled(context.Background(), "nope")
	assert.Equal(t, request.ErrNotFound, err)
}
