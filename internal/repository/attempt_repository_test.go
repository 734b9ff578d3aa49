package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-spark/internal/domain"
)

// setupAttemptTestDB creates a new sqlx.DB instance and sqlmock for attempt repository testing.
func setupAttemptTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })
	return sqlxDB, mock
}

func testQuiz(t *testing.T) *domain.Quiz {
	t.Helper()
	quiz, err := domain.NewQuiz([]domain.Question{
		{Question: "Q1", Answers: []string{"A", "X"}, CorrectAnswer: "A"},
		{Question: "Q2", Answers: []string{"B", "Y"}, CorrectAnswer: "Y"},
	})
	require.NoError(t, err)
	return quiz
}

const quizJSON = `[{"question":"Q1","answers":["A","X"],"correctAnswer":"A"},{"question":"Q2","answers":["B","Y"],"correctAnswer":"Y"}]`

func TestSQLXAttemptRepository_SaveAttempt(t *testing.T) {
	db, mock := setupAttemptTestDB(t)
	repo := NewSQLXAttemptRepository(db)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	attempt := &domain.Attempt{
		ID:         "01HV0000000000000000000000",
		Quiz:       testQuiz(t),
		Answers:    domain.AnswerSet{"A", "B"},
		SourceText: "source",
		Score:      1,
		Total:      2,
		CreatedAt:  created,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO quiz_attempts (ID, QUIZ_JSON, ANSWERS_JSON, SOURCE_TEXT, SCORE, TOTAL, CREATED_AT)`)).
		WithArgs(attempt.ID, quizJSON, `["A","B"]`, sql.NullString{String: "source", Valid: true}, 1, 2, created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveAttempt(context.Background(), attempt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXAttemptRepository_SaveAttempt_AssignsIDAndRejectsNil(t *testing.T) {
	db, mock := setupAttemptTestDB(t)
	repo := NewSQLXAttemptRepository(db)

	err := repo.SaveAttempt(context.Background(), nil)
	assert.Error(t, err)

	mock.ExpectExec("INSERT INTO quiz_attempts").WillReturnResult(sqlmock.NewResult(0, 1))
	attempt := &domain.Attempt{Quiz: testQuiz(t), Answers: domain.AnswerSet{"A", "Y"}}
	require.NoError(t, repo.SaveAttempt(context.Background(), attempt))
	assert.Len(t, attempt.ID, 26)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXAttemptRepository_SaveAttempt_DBError(t *testing.T) {
	db, mock := setupAttemptTestDB(t)
	repo := NewSQLXAttemptRepository(db)

	mock.ExpectExec("INSERT INTO quiz_attempts").WillReturnError(errors.New("ORA-00942: table or view does not exist"))
	err := repo.SaveAttempt(context.Background(), &domain.Attempt{ID: "x", Quiz: testQuiz(t)})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
}

func TestSQLXAttemptRepository_GetAttemptByID(t *testing.T) {
	db, mock := setupAttemptTestDB(t)
	repo := NewSQLXAttemptRepository(db)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"ID", "QUIZ_JSON", "ANSWERS_JSON", "SOURCE_TEXT", "SCORE", "TOTAL", "CREATED_AT"}).
		AddRow("A1", quizJSON, `["A","B"]`, "source", 1, 2, created)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM quiz_attempts`)).WithArgs("A1").WillReturnRows(rows)

	attempt, err := repo.GetAttemptByID(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", attempt.ID)
	assert.Equal(t, 2, attempt.Quiz.Len())
	assert.Equal(t, domain.AnswerSet{"A", "B"}, attempt.Answers)
	assert.Equal(t, "source", attempt.SourceText)
	assert.Equal(t, created, attempt.CreatedAt)
	assert.Equal(t, 1, attempt.Results().Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXAttemptRepository_GetAttemptByID_NotFound(t *testing.T) {
	db, mock := setupAttemptTestDB(t)
	repo := NewSQLXAttemptRepository(db)

	mock.ExpectQuery("FROM quiz_attempts").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetAttemptByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXAttemptRepository_GetAttemptByID_CorruptRow(t *testing.T) {
	db, mock := setupAttemptTestDB(t)
	repo := NewSQLXAttemptRepository(db)

	rows := sqlmock.NewRows([]string{"ID", "QUIZ_JSON", "ANSWERS_JSON", "SOURCE_TEXT", "SCORE", "TOTAL", "CREATED_AT"}).
		AddRow("A1", `[]`, `[]`, nil, 0, 0, time.Now())
	mock.ExpectQuery("FROM quiz_attempts").WithArgs("A1").WillReturnRows(rows)

	_, err := repo.GetAttemptByID(context.Background(), "A1")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
}
