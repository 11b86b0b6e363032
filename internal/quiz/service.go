package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aiqualitylab/qa-quiz-agent/internal/logger"
	"github.com/aiqualitylab/qa-quiz-agent/internal/opentdb"
	"github.com/aiqualitylab/qa-quiz-agent/internal/quizlog"
)

// QuestionsFetcher supplies raw questions for a new session.
type QuestionsFetcher func(ctx context.Context, amount int) ([]opentdb.RawQuestion, error)

// Explainer produces a short rationale for the correct answer.
type Explainer interface {
	ExplainAnswer(ctx context.Context, question, correctAnswer string) (string, error)
}

// defaultSessionRetention keeps a finished session queryable long enough for
// summary and history reads before the registry drops it.
const defaultSessionRetention = 10 * time.Minute

type Config struct {
	QuestionCount int
	AdvanceDelay  time.Duration
	// SessionRetention is how long a finished session stays in the
	// registry; zero means the default.
	SessionRetention time.Duration
}

type Service struct {
	log       *logger.Logger
	fetcher   QuestionsFetcher
	explainer Explainer
	store     quizlog.Store
	cfg       Config

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewService(log *logger.Logger, fetcher QuestionsFetcher, explainer Explainer, store quizlog.Store, cfg Config) (*Service, error) {
	if fetcher == nil {
		return nil, errors.New("question fetcher is not configured")
	}
	if explainer == nil {
		return nil, errors.New("explainer is not configured")
	}
	if store == nil {
		return nil, errors.New("quiz log store is not configured")
	}
	if cfg.QuestionCount <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", cfg.QuestionCount)
	}
	if cfg.SessionRetention <= 0 {
		cfg.SessionRetention = defaultSessionRetention
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &Service{
		log:       log.With("component", "quiz"),
		fetcher:   fetcher,
		explainer: explainer,
		store:     store,
		cfg:       cfg,
		sessions:  make(map[string]*Session),
	}, nil
}

// StartSession fetches a full batch of questions up front and registers a new
// session. A fetch failure creates nothing: there is no partial session to
// clean up and the caller simply retries.
func (s *Service) StartSession(ctx context.Context) (Snapshot, error) {
	raw, err := s.fetcher(ctx, s.cfg.QuestionCount)
	if err != nil {
		return Snapshot{}, err
	}

	questions := BuildQuestions(raw)
	if len(questions) == 0 {
		return Snapshot{}, fmt.Errorf("%w: no questions returned", opentdb.ErrFetchFailed)
	}

	target := s.cfg.QuestionCount
	if len(questions) < target {
		target = len(questions)
	}

	session := &Session{
		ID:     uuid.NewString(),
		state:  StateAwaitingAnswer,
		queue:  questions,
		target: target,
	}
	session.mu.Lock()
	session.advanceLocked()
	snapshot := session.snapshotLocked()
	session.mu.Unlock()

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.log.Info("session started", "session_id", session.ID, "questions", target)
	return snapshot, nil
}

func (s *Service) Snapshot(sessionID string) (Snapshot, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshotLocked(), nil
}

// SubmitAnswer evaluates one round: exact-match scoring, explanation
// generation, log append, then the timed window before the next question.
// Explanation and log failures degrade; they never fail the round.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, answer string) (Snapshot, error) {
	if answer == "" {
		return Snapshot{}, ErrEmptyAnswer
	}

	session, err := s.lookup(sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	session.mu.Lock()
	switch session.state {
	case StateAwaitingAnswer:
	case StateFinished:
		session.mu.Unlock()
		return Snapshot{}, ErrSessionFinished
	default:
		session.mu.Unlock()
		return Snapshot{}, ErrNotAwaitingAnswer
	}

	question := *session.current
	session.state = StateEvaluating
	session.mu.Unlock()

	correct := question.IsCorrect(answer)
	explanation := s.explain(ctx, question, correct)

	record := quizlog.Record{
		Question:      question.Prompt,
		Options:       question.OptionTexts(),
		YourAnswer:    answer,
		CorrectAnswer: question.CorrectAnswer(),
		Correct:       correct,
		Explanation:   explanation,
		AnsweredAt:    time.Now().UTC(),
	}
	if err := s.store.Append(ctx, record); err != nil {
		s.log.Warn("quiz log append failed", "session_id", sessionID, "error", err)
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if correct {
		session.correct++
	} else {
		session.incorrect++
	}
	session.lastResult = &RoundOutcome{
		Correct:       correct,
		CorrectAnswer: question.CorrectAnswer(),
		Explanation:   explanation,
	}
	session.state = StateShowingExplanation
	s.scheduleAdvanceLocked(session)

	return session.snapshotLocked(), nil
}

// Advance short-circuits the post-answer delay and loads the next question.
func (s *Service) Advance(sessionID string) (Snapshot, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	switch session.state {
	case StateShowingExplanation:
	case StateFinished:
		return session.snapshotLocked(), nil
	default:
		return Snapshot{}, ErrNotShowingResult
	}

	session.stopTimerLocked()
	session.advanceLocked()
	if session.state == StateFinished {
		s.scheduleRemoval(session.ID)
	}
	return session.snapshotLocked(), nil
}

func (s *Service) History(ctx context.Context) ([]quizlog.Record, error) {
	return s.store.Records(ctx)
}

// scheduleAdvanceLocked arms the auto-advance timer. With a zero delay the
// session still pauses on the explanation until the player advances; the
// timer only exists for players who walk away.
func (s *Service) scheduleAdvanceLocked(session *Session) {
	session.stopTimerLocked()
	if s.cfg.AdvanceDelay <= 0 {
		return
	}

	session.nextAt = time.Now().Add(s.cfg.AdvanceDelay)
	gen := session.advanceGen
	session.advanceTimer = time.AfterFunc(s.cfg.AdvanceDelay, func() {
		s.autoAdvance(session, gen)
	})
}

func (s *Service) autoAdvance(session *Session, gen int) {
	session.mu.Lock()
	defer session.mu.Unlock()

	// A manual advance (or a newer round) already moved the session on.
	if session.advanceGen != gen || session.state != StateShowingExplanation {
		return
	}
	session.advanceTimer = nil
	session.advanceLocked()
	if session.state == StateFinished {
		s.scheduleRemoval(session.ID)
	}
	s.log.Debug("session auto-advanced", "session_id", session.ID, "state", session.state)
}

// scheduleRemoval drops a finished session from the registry once its
// retention window passes, so the map does not grow for the process lifetime.
func (s *Service) scheduleRemoval(sessionID string) {
	time.AfterFunc(s.cfg.SessionRetention, func() {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		s.log.Debug("finished session removed", "session_id", sessionID)
	})
}

func (s *Service) explain(ctx context.Context, question Question, correct bool) string {
	explanation, err := s.explainer.ExplainAnswer(ctx, question.Prompt, question.CorrectAnswer())
	if err != nil {
		s.log.Warn("explanation generation failed", "error", err)
		return fallbackExplanation(question, correct)
	}
	return explanation
}

func fallbackExplanation(question Question, correct bool) string {
	if correct {
		return fmt.Sprintf("No explanation available right now, but you got it: '%s' is correct.", question.CorrectAnswer())
	}
	return fmt.Sprintf("No explanation available right now. The correct answer is '%s'.", question.CorrectAnswer())
}

func (s *Service) lookup(sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
