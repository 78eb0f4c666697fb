package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/interview-quiz-bot/internal/repository"
	"github.com/aliskhannn/interview-quiz-bot/internal/storage"
)

// Status tells the transport what kind of reply to render.
type Status string

const (
	StatusQuestion            Status = "question"             // a question with options is presented
	StatusRetryPrompt         Status = "retry_prompt"         // category exhausted, ask yes/no
	StatusCorrect             Status = "correct"              // reply matched, Next holds the follow-up
	StatusWrong               Status = "wrong"                // reply did not match, same question stays
	StatusMenu                Status = "menu"                 // back at the category menu
	StatusScore               Status = "score"                // score summary
	StatusNoActiveQuestion    Status = "no_active_question"   // nothing to answer
	StatusCategoryUnavailable Status = "category_unavailable" // category failed to load or is unknown
	StatusNotReady            Status = "not_ready"            // question bank not installed yet
)

// ScoringPolicy decides when a correct answer increments the score.
type ScoringPolicy string

const (
	// ScorePerQuestion credits every question answered correctly once,
	// however many wrong replies came before.
	ScorePerQuestion ScoringPolicy = "per_question"
	// ScoreFirstAttempt credits a question only if no wrong reply preceded
	// the correct one.
	ScoreFirstAttempt ScoringPolicy = "first_attempt"
)

// ParseScoringPolicy validates a configured policy name.
func ParseScoringPolicy(s string) (ScoringPolicy, error) {
	switch p := ScoringPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case ScorePerQuestion, ScoreFirstAttempt:
		return p, nil
	case "":
		return ScorePerQuestion, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScoringPolicy, s)
	}
}

var ErrUnknownScoringPolicy = errors.New("unknown scoring policy")

// Reply is the outcome of one quiz operation.
type Reply struct {
	Status      Status
	Category    entities.Category
	Question    *entities.Question
	Explanation string
	Scores      map[entities.Category]int // correct answers per category
	Totals      map[entities.Category]int // questions per category, -1 if unavailable
	Next        *Reply
}

// QuizService drives the per-user quiz state machine.
type QuizService struct {
	store    SessionStore
	selector *QuestionSelector
	bank     atomic.Pointer[repository.QuestionBank]
	scoring  ScoringPolicy
	locks    *userLocks
	logger   *zap.Logger
}

// NewQuizService creates a QuizService. The service answers StatusNotReady
// until SetBank is called.
func NewQuizService(
	store SessionStore,
	selector *QuestionSelector,
	scoring ScoringPolicy,
	logger *zap.Logger,
) *QuizService {
	if selector == nil {
		selector = NewQuestionSelector(nil)
	}
	if scoring == "" {
		scoring = ScorePerQuestion
	}
	return &QuizService{
		store:    store,
		selector: selector,
		scoring:  scoring,
		locks:    newUserLocks(),
		logger:   logger,
	}
}

// SetBank installs the fully loaded question bank.
func (s *QuizService) SetBank(bank *repository.QuestionBank) {
	s.bank.Store(bank)
}

// Ready reports whether a question bank is installed.
func (s *QuizService) Ready() bool {
	return s.bank.Load() != nil
}

// StartCategory serves the next unasked question of category, or the retry
// offer when the category is exhausted. An outstanding question is dropped
// without penalty.
func (s *QuizService) StartCategory(ctx context.Context, userID int64, category entities.Category) (*Reply, error) {
	return s.withSession(ctx, userID, func(bank *repository.QuestionBank, session *entities.Session) (*Reply, bool) {
		return s.start(bank, userID, session, category)
	})
}

// SubmitAnswer checks text against the outstanding question. While a retry
// offer is pending text is taken as the yes/no decision.
func (s *QuizService) SubmitAnswer(ctx context.Context, userID int64, text string) (*Reply, error) {
	return s.withSession(ctx, userID, func(bank *repository.QuestionBank, session *entities.Session) (*Reply, bool) {
		switch session.State.Phase {
		case entities.PhaseAwaitingAnswer:
			return s.answer(bank, userID, session, text)
		case entities.PhaseAwaitingRetry:
			return s.confirm(bank, userID, session, text)
		default:
			return &Reply{Status: StatusNoActiveQuestion}, false
		}
	})
}

// ConfirmRetry resolves a pending retry offer.
func (s *QuizService) ConfirmRetry(ctx context.Context, userID int64, decision string) (*Reply, error) {
	return s.withSession(ctx, userID, func(bank *repository.QuestionBank, session *entities.Session) (*Reply, bool) {
		return s.confirm(bank, userID, session, decision)
	})
}

// ShowMenu returns the user to the category menu.
func (s *QuizService) ShowMenu(ctx context.Context, userID int64) (*Reply, error) {
	return s.withSession(ctx, userID, func(_ *repository.QuestionBank, session *entities.Session) (*Reply, bool) {
		changed := session.State.Phase != entities.PhaseIdle
		session.State = entities.Idle()
		return &Reply{Status: StatusMenu}, changed
	})
}

// GetScoreSummary returns the correct-answer counters of every category.
func (s *QuizService) GetScoreSummary(ctx context.Context, userID int64) (*Reply, error) {
	return s.withSession(ctx, userID, func(bank *repository.QuestionBank, session *entities.Session) (*Reply, bool) {
		totals := make(map[entities.Category]int)
		for _, c := range entities.Categories() {
			totals[c] = bank.Count(c)
		}
		return &Reply{Status: StatusScore, Scores: session.Scores(), Totals: totals}, false
	})
}

func (s *QuizService) start(
	bank *repository.QuestionBank, userID int64, session *entities.Session, category entities.Category,
) (*Reply, bool) {
	questions, ok := bank.Questions(category)
	if !ok {
		s.logger.Debug("category unavailable",
			zap.Int64("user_id", userID),
			zap.String("category", string(category)),
		)
		return &Reply{Status: StatusCategoryUnavailable, Category: category}, false
	}

	session.FirstAttempt = true

	idx, ok := s.selector.Next(len(questions), session.AskedIn(category))
	if !ok {
		session.State = entities.AwaitingRetry(category)
		s.logger.Debug("category exhausted",
			zap.Int64("user_id", userID),
			zap.String("category", string(category)),
		)
		return &Reply{Status: StatusRetryPrompt, Category: category}, true
	}

	session.MarkAsked(category, idx)
	session.State = entities.AwaitingAnswer(category, idx)

	s.logger.Debug("question served",
		zap.Int64("user_id", userID),
		zap.String("category", string(category)),
		zap.Int("index", idx),
	)

	return &Reply{Status: StatusQuestion, Category: category, Question: &questions[idx]}, true
}

func (s *QuizService) answer(
	bank *repository.QuestionBank, userID int64, session *entities.Session, text string,
) (*Reply, bool) {
	category := session.State.Category
	q, err := bank.Get(category, session.State.QuestionIndex)
	if err != nil {
		session.State = entities.Idle()
		return &Reply{Status: StatusNoActiveQuestion}, true
	}

	if !q.IsCorrect(text) {
		session.FirstAttempt = false
		return &Reply{Status: StatusWrong, Category: category, Question: q}, true
	}

	if s.scoring == ScorePerQuestion || session.FirstAttempt {
		session.AddCorrect(category)
	}

	s.logger.Debug("correct answer",
		zap.Int64("user_id", userID),
		zap.String("category", string(category)),
		zap.Bool("first_attempt", session.FirstAttempt),
	)

	next, _ := s.start(bank, userID, session, category)

	return &Reply{
		Status:      StatusCorrect,
		Category:    category,
		Question:    q,
		Explanation: q.Explanation,
		Next:        next,
	}, true
}

func (s *QuizService) confirm(
	bank *repository.QuestionBank, userID int64, session *entities.Session, decision string,
) (*Reply, bool) {
	if session.State.Phase != entities.PhaseAwaitingRetry {
		return &Reply{Status: StatusNoActiveQuestion}, false
	}

	category := session.State.Category
	if !isAffirmative(decision) {
		session.State = entities.Idle()
		return &Reply{Status: StatusMenu, Category: category}, true
	}

	session.ResetAsked(category)
	reply, _ := s.start(bank, userID, session, category)
	if reply.Status == StatusCategoryUnavailable {
		session.State = entities.Idle()
	}

	return reply, true
}

// withSession runs fn inside the load, mutate and save cycle of one user.
// Save failures are logged and the reply is still returned.
func (s *QuizService) withSession(
	ctx context.Context,
	userID int64,
	fn func(bank *repository.QuestionBank, session *entities.Session) (*Reply, bool),
) (*Reply, error) {
	bank := s.bank.Load()
	if bank == nil {
		return &Reply{Status: StatusNotReady}, nil
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	session, err := s.loadSession(ctx, userID, bank)
	if err != nil {
		return nil, err
	}

	reply, changed := fn(bank, session)
	if !changed {
		return reply, nil
	}

	if err = s.store.Save(ctx, userID, session); err != nil {
		s.logger.Error("failed to save session",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	return reply, nil
}

func (s *QuizService) loadSession(
	ctx context.Context, userID int64, bank *repository.QuestionBank,
) (*entities.Session, error) {
	session, err := s.store.Load(ctx, userID)
	if errors.Is(err, storage.ErrSessionNotFound) {
		return entities.NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	reconcile(bank, session)

	return session, nil
}

// reconcile drops references that no longer fit the bank, e.g. after the
// question files changed between restarts.
func reconcile(bank *repository.QuestionBank, session *entities.Session) {
	for category, asked := range session.Asked {
		count := bank.Count(category)
		if count < 0 {
			continue
		}

		valid := asked[:0]
		for _, idx := range asked {
			if idx >= 0 && idx < count {
				valid = append(valid, idx)
			}
		}
		session.Asked[category] = valid
	}

	switch session.State.Phase {
	case entities.PhaseAwaitingAnswer:
		if _, err := bank.Get(session.State.Category, session.State.QuestionIndex); err != nil {
			session.State = entities.Idle()
		}
	case entities.PhaseAwaitingRetry:
		if !session.State.Category.Valid() {
			session.State = entities.Idle()
		}
	case entities.PhaseIdle:
	default:
		session.State = entities.Idle()
	}
}

var affirmative = map[string]struct{}{
	"да":  {},
	"д":   {},
	"yes": {},
	"y":   {},
}

func isAffirmative(decision string) bool {
	_, ok := affirmative[strings.ToLower(strings.TrimSpace(decision))]
	return ok
}
