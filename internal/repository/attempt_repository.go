package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz-spark/internal/domain"
	"quiz-spark/internal/repository/models"
	"quiz-spark/internal/util"
)

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db DBTX
}

// NewSQLXAttemptRepository creates a repository over db (a *sqlx.DB or *sqlx.Tx).
func NewSQLXAttemptRepository(db DBTX) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toModelAttempt(a *domain.Attempt) (*models.QuizAttempt, error) {
	quizJSON, err := json.Marshal(a.Quiz)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quiz: %w", err)
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return &models.QuizAttempt{
		ID:          a.ID,
		QuizJSON:    string(quizJSON),
		AnswersJSON: models.StringSlice(a.Answers),
		SourceText:  util.StringToNullString(a.SourceText),
		Score:       a.Score,
		Total:       a.Total,
		CreatedAt:   createdAt,
	}, nil
}

func toDomainAttempt(m *models.QuizAttempt) (*domain.Attempt, error) {
	var quiz domain.Quiz
	if err := json.Unmarshal([]byte(m.QuizJSON), &quiz); err != nil {
		return nil, fmt.Errorf("failed to decode quiz for attempt %s: %w", m.ID, err)
	}
	return &domain.Attempt{
		ID:         m.ID,
		Quiz:       &quiz,
		Answers:    domain.AnswerSet(m.AnswersJSON),
		SourceText: m.SourceText.String,
		Score:      m.Score,
		Total:      m.Total,
		CreatedAt:  m.CreatedAt,
	}, nil
}

// SaveAttempt inserts a finished attempt.
func (r *sqlxAttemptRepository) SaveAttempt(ctx context.Context, attempt *domain.Attempt) error {
	if attempt == nil || attempt.Quiz == nil {
		return domain.NewInvalidInputError("attempt and its quiz are required")
	}
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	row, err := toModelAttempt(attempt)
	if err != nil {
		return domain.NewInternalError("failed to prepare attempt", err)
	}

	query := `INSERT INTO quiz_attempts (ID, QUIZ_JSON, ANSWERS_JSON, SOURCE_TEXT, SCORE, TOTAL, CREATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7)`

	answers, err := row.AnswersJSON.Value()
	if err != nil {
		return domain.NewInternalError("failed to encode answers", err)
	}
	_, err = r.db.ExecContext(ctx, query,
		row.ID,
		row.QuizJSON,
		answers,
		row.SourceText,
		row.Score,
		row.Total,
		row.CreatedAt,
	)
	if err != nil {
		return domain.NewInternalError("failed to save quiz attempt", err)
	}
	return nil
}

// GetAttemptByID returns the attempt or a NOT_FOUND error.
func (r *sqlxAttemptRepository) GetAttemptByID(ctx context.Context, id string) (*domain.Attempt, error) {
	query := `SELECT ID, QUIZ_JSON, ANSWERS_JSON, SOURCE_TEXT, SCORE, TOTAL, CREATED_AT
	FROM quiz_attempts
	WHERE ID = :1`

	var row models.QuizAttempt
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("attempt not found")
		}
		return nil, domain.NewInternalError("failed to load quiz attempt", err)
	}
	attempt, err := toDomainAttempt(&row)
	if err != nil {
		return nil, domain.NewInternalError("stored attempt is corrupt", err)
	}
	return attempt, nil
}
