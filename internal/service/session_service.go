package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"quiz-spark/internal/cache"
	"quiz-spark/internal/domain"
	"quiz-spark/internal/dto"
	"quiz-spark/internal/logger"
	"quiz-spark/internal/util"
)

var (
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrSessionNotFound     = errors.New("session not found")
)

// SessionService drives one client's CONFIG -> QUIZ -> RESULTS workflow.
// Every operation loads the workflow, applies a domain transition and saves it.
type SessionService interface {
	Create(ctx context.Context) (*dto.CreateSessionResponse, error)
	Get(ctx context.Context, id string) (*domain.Workflow, error)
	UpdateConfig(ctx context.Context, id string, req *dto.UpdateConfigRequest) (*domain.Workflow, error)
	ExtractInto(ctx context.Context, id, fileDataURI string) (*domain.Workflow, error)
	Generate(ctx context.Context, id string) (*domain.Workflow, error)
	SelectAnswer(ctx context.Context, id, answer string) (*domain.Workflow, error)
	Next(ctx context.Context, id string) (*domain.Workflow, error)
	Back(ctx context.Context, id string) (*domain.Workflow, error)
	Submit(ctx context.Context, id string) (*domain.Workflow, error)
	Restart(ctx context.Context, id string) (*domain.Workflow, error)
	ValidateToken(ctx context.Context, token string) (*dto.SessionClaims, error)
}

type sessionServiceImpl struct {
	store      domain.Cache
	extraction ExtractionService
	quizGen    QuizGenerationService
	attempts   domain.AttemptRepository
	secret     []byte
	ttl        time.Duration
	now        func() time.Time

	// locks serialises load/modify/save for a session within this process.
	// Sessions share a fixed set of stripes so the set never grows.
	locks [sessionLockStripes]sync.Mutex
}

const sessionLockStripes = 64

// NewSessionService creates a session service. attempts may be nil, in which
// case finished quizzes are not archived.
func NewSessionService(
	store domain.Cache,
	extraction ExtractionService,
	quizGen QuizGenerationService,
	attempts domain.AttemptRepository,
	jwtSecret string,
	ttl time.Duration,
) (SessionService, error) {
	if store == nil {
		return nil, errors.New("session store cannot be nil")
	}
	if jwtSecret == "" {
		return nil, errors.New("session jwt secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &sessionServiceImpl{
		store:      store,
		extraction: extraction,
		quizGen:    quizGen,
		attempts:   attempts,
		secret:     []byte(jwtSecret),
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

func (s *sessionServiceImpl) key(id string) string {
	return cache.GenerateCacheKey(cache.ServiceSession, "workflow", id)
}

func (s *sessionServiceImpl) lock(id string) func() {
	mu := &s.locks[lockStripe(id)]
	mu.Lock()
	return mu.Unlock
}

func lockStripe(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32() % sessionLockStripes)
}

func (s *sessionServiceImpl) load(ctx context.Context, id string) (*domain.Workflow, error) {
	data, err := s.store.Get(ctx, s.key(id))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewError(domain.CodeNotFound, "session not found or expired", ErrSessionNotFound)
		}
		return nil, domain.NewInternalError("failed to load session", err)
	}
	var w domain.Workflow
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		logger.Get().Error("Stored session is corrupt", zap.String("session_id", id), zap.Error(err))
		return nil, domain.NewInternalError("failed to decode session", err)
	}
	return &w, nil
}

func (s *sessionServiceImpl) save(ctx context.Context, id string, w *domain.Workflow) error {
	data, err := json.Marshal(w)
	if err != nil {
		return domain.NewInternalError("failed to encode session", err)
	}
	if err := s.store.Set(ctx, s.key(id), string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to save session", zap.String("session_id", id), zap.Error(err))
		return domain.NewInternalError("failed to save session", err)
	}
	return nil
}

// mutate runs fn under the session lock and saves the workflow only when fn succeeds.
func (s *sessionServiceImpl) mutate(ctx context.Context, id string, fn func(w *domain.Workflow) error) (*domain.Workflow, error) {
	unlock := s.lock(id)
	defer unlock()

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(w); err != nil {
		return nil, err
	}
	if err := s.save(ctx, id, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *sessionServiceImpl) Create(ctx context.Context) (*dto.CreateSessionResponse, error) {
	id := util.NewULID()
	w := domain.NewWorkflow()
	if err := s.save(ctx, id, w); err != nil {
		return nil, err
	}

	expiresAt := s.now().Add(s.ttl)
	token, err := s.issueToken(id, expiresAt)
	if err != nil {
		return nil, domain.NewInternalError("failed to issue session token", err)
	}
	logger.Get().Info("Session created", zap.String("session_id", id))
	return &dto.CreateSessionResponse{SessionID: id, Token: token, ExpiresAt: expiresAt, View: w.View()}, nil
}

func (s *sessionServiceImpl) Get(ctx context.Context, id string) (*domain.Workflow, error) {
	return s.load(ctx, id)
}

func (s *sessionServiceImpl) UpdateConfig(ctx context.Context, id string, req *dto.UpdateConfigRequest) (*domain.Workflow, error) {
	if req == nil {
		return nil, domain.NewInvalidInputError("request body is required")
	}
	return s.mutate(ctx, id, func(w *domain.Workflow) error {
		if w.State != domain.StateConfig {
			return domain.NewInvalidTransitionError(string(w.State), "edit the configuration")
		}
		if req.NumQuestions != nil {
			if err := w.Config.SetNumQuestions(*req.NumQuestions); err != nil {
				return err
			}
		}
		if req.Text != nil {
			if err := w.Config.SetText(*req.Text); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExtractInto marks the session as extracting, calls the provider without
// holding the lock and then stores the text, or clears it on failure.
// The result is dropped when the session no longer awaits this request.
func (s *sessionServiceImpl) ExtractInto(ctx context.Context, id, fileDataURI string) (*domain.Workflow, error) {
	requestID := util.NewULID()
	if _, err := s.mutate(ctx, id, func(w *domain.Workflow) error {
		if w.State != domain.StateConfig {
			return domain.NewInvalidTransitionError(string(w.State), "extract text")
		}
		return w.Config.BeginExtraction(requestID)
	}); err != nil {
		return nil, err
	}

	text, extractErr := s.extraction.ExtractText(ctx, fileDataURI)

	discarded := false
	w, err := s.mutate(ctx, id, func(w *domain.Workflow) error {
		if w.State != domain.StateConfig || !w.Config.Extracting || !w.Config.Awaits(requestID) {
			discarded = true
			extractErr = nil
			return nil
		}
		if extractErr != nil {
			w.Config.FailExtraction(userMessage(extractErr))
			return nil
		}
		w.Config.CompleteExtraction(text)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if extractErr != nil {
		return nil, extractErr
	}
	if discarded {
		logger.Get().Info("Discarded extracted text for a superseded request",
			zap.String("session_id", id),
			zap.String("request_id", requestID))
	}
	return w, nil
}

// Generate follows the same begin/call/complete shape as ExtractInto.
// A failed generation keeps the typed text.
func (s *sessionServiceImpl) Generate(ctx context.Context, id string) (*domain.Workflow, error) {
	var req dto.GenerateQuizRequest
	requestID := util.NewULID()
	if _, err := s.mutate(ctx, id, func(w *domain.Workflow) error {
		if w.State != domain.StateConfig {
			return domain.NewInvalidTransitionError(string(w.State), "generate a quiz")
		}
		if err := w.Config.BeginGeneration(requestID); err != nil {
			return err
		}
		req = dto.GenerateQuizRequest{Text: w.Config.Text, NumQuestions: w.Config.NumQuestions}
		return nil
	}); err != nil {
		return nil, err
	}

	quiz, genErr := s.quizGen.Generate(ctx, &req)

	w, err := s.mutate(ctx, id, func(w *domain.Workflow) error {
		if w.State != domain.StateConfig || !w.Config.Generating || !w.Config.Awaits(requestID) {
			genErr = nil
			quiz = nil
			return nil
		}
		if genErr != nil {
			w.Config.FailGeneration(userMessage(genErr))
			return nil
		}
		if err := w.Generate(quiz, req.Text); err != nil {
			w.Config.FailGeneration(userMessage(err))
			genErr = err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		return nil, genErr
	}
	if quiz == nil {
		logger.Get().Info("Discarded quiz for a superseded request",
			zap.String("session_id", id),
			zap.String("request_id", requestID))
		return w, nil
	}
	logger.Get().Info("Quiz started", zap.String("session_id", id), zap.Int("questions", quiz.Len()))
	return w, nil
}

func (s *sessionServiceImpl) SelectAnswer(ctx context.Context, id, answer string) (*domain.Workflow, error) {
	return s.mutate(ctx, id, func(w *domain.Workflow) error { return w.SelectAnswer(answer) })
}

func (s *sessionServiceImpl) Next(ctx context.Context, id string) (*domain.Workflow, error) {
	return s.mutate(ctx, id, func(w *domain.Workflow) error { return w.Next() })
}

func (s *sessionServiceImpl) Back(ctx context.Context, id string) (*domain.Workflow, error) {
	return s.mutate(ctx, id, func(w *domain.Workflow) error { return w.Back() })
}

// Submit finishes the quiz and archives the attempt when an archive is configured.
func (s *sessionServiceImpl) Submit(ctx context.Context, id string) (*domain.Workflow, error) {
	return s.mutate(ctx, id, func(w *domain.Workflow) error {
		answers, err := w.Submit()
		if err != nil {
			return err
		}
		if s.attempts == nil {
			return nil
		}

		res := domain.Grade(w.Quiz, answers, w.SourceText)
		attempt := &domain.Attempt{
			ID:         util.NewULID(),
			Quiz:       w.Quiz,
			Answers:    answers,
			SourceText: w.SourceText,
			Score:      res.Score,
			Total:      res.Total,
			CreatedAt:  s.now().UTC(),
		}
		if err := s.attempts.SaveAttempt(ctx, attempt); err != nil {
			logger.Get().Error("Failed to archive quiz attempt",
				zap.String("session_id", id),
				zap.Error(err))
			return nil
		}
		w.AttemptID = attempt.ID
		return nil
	})
}

func (s *sessionServiceImpl) Restart(ctx context.Context, id string) (*domain.Workflow, error) {
	return s.mutate(ctx, id, func(w *domain.Workflow) error { return w.Restart() })
}

func (s *sessionServiceImpl) issueToken(id string, expiresAt time.Time) (string, error) {
	now := s.now()
	claims := dto.SessionClaims{
		SessionID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   id,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *sessionServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*dto.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("Session token expired", zap.Error(err))
		} else {
			logger.Get().Warn("Session token validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}

	claims, ok := token.Claims.(*dto.SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidSessionToken
	}
	return claims, nil
}

// userMessage is the text stored as the view's last error. It never includes provider detail.
func userMessage(err error) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	if domain.IsValidation(err) {
		return err.Error()
	}
	return "Something went wrong. Please try again."
}
