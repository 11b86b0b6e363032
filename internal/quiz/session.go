package quiz

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrNotAwaitingAnswer = errors.New("session is not awaiting an answer")
	ErrNotShowingResult  = errors.New("session has no pending advance")
	ErrSessionFinished   = errors.New("session is finished")
	ErrEmptyAnswer       = errors.New("answer must not be empty")
)

type State string

const (
	StateAwaitingAnswer State = "awaiting_answer"
	StateEvaluating     State = "evaluating"
	// StateShowingExplanation covers the whole post-answer window: the
	// explanation stays visible while the advance timer runs down.
	StateShowingExplanation State = "showing_explanation"
	StateFinished           State = "finished"
)

// RoundOutcome is what the answering user gets back for one round.
type RoundOutcome struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// Session holds one player's run through a fixed number of questions.
// All fields past the ID are guarded by mu; the advance timer fires on its
// own goroutine and re-enters through the service, so transitions check
// advanceGen to ignore stale timers.
type Session struct {
	ID string

	mu         sync.Mutex
	state      State
	queue      []Question
	current    *Question
	correct    int
	incorrect  int
	target     int
	lastResult *RoundOutcome
	nextAt     time.Time

	advanceTimer *time.Timer
	advanceGen   int
}

// PublicQuestion is the question as shown to the player. The correct answer
// stays server-side until the round is answered.
type PublicQuestion struct {
	QuestionID string   `json:"question_id"`
	Prompt     string   `json:"prompt"`
	Category   string   `json:"category,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Options    []Option `json:"options"`
}

// Snapshot is a point-in-time view of a session, safe to hand to renderers.
type Snapshot struct {
	SessionID      string          `json:"session_id"`
	State          State           `json:"state"`
	QuestionNumber int             `json:"question_number"`
	QuestionCount  int             `json:"question_count"`
	Question       *PublicQuestion `json:"question,omitempty"`
	Correct        int             `json:"correct"`
	Incorrect      int             `json:"incorrect"`
	Answered       int             `json:"answered"`
	Percentage     float64         `json:"percentage"`
	NextAt         *time.Time      `json:"next_at,omitempty"`
	LastOutcome    *RoundOutcome   `json:"last_outcome,omitempty"`
}

// Percentage is the share of answered rounds that were correct, defined as
// 0 when nothing has been answered yet.
func Percentage(correct, answered int) float64 {
	if answered <= 0 {
		return 0
	}
	return 100 * float64(correct) / float64(answered)
}

// snapshotLocked builds a Snapshot; callers must hold s.mu.
func (s *Session) snapshotLocked() Snapshot {
	answered := s.correct + s.incorrect
	snapshot := Snapshot{
		SessionID:      s.ID,
		State:          s.state,
		QuestionNumber: answered,
		QuestionCount:  s.target,
		Correct:        s.correct,
		Incorrect:      s.incorrect,
		Answered:       answered,
		Percentage:     Percentage(s.correct, answered),
		LastOutcome:    s.lastResult,
	}

	if s.current != nil && s.state != StateFinished {
		snapshot.Question = &PublicQuestion{
			QuestionID: s.current.QuestionID,
			Prompt:     s.current.Prompt,
			Category:   s.current.Category,
			Difficulty: s.current.Difficulty,
			Options:    s.current.Options,
		}
		if s.state == StateAwaitingAnswer || s.state == StateEvaluating {
			snapshot.QuestionNumber = answered + 1
		}
	}

	if s.state == StateShowingExplanation && !s.nextAt.IsZero() {
		nextAt := s.nextAt
		snapshot.NextAt = &nextAt
	}

	return snapshot
}

// advanceLocked moves to the next question or the terminal state.
// Callers must hold s.mu and have already stopped any pending timer.
func (s *Session) advanceLocked() {
	s.nextAt = time.Time{}
	if s.correct+s.incorrect >= s.target || len(s.queue) == 0 {
		s.current = nil
		s.state = StateFinished
		return
	}

	next := s.queue[0]
	s.queue = s.queue[1:]
	s.current = &next
	s.state = StateAwaitingAnswer
}

// stopTimerLocked invalidates any scheduled auto-advance. Callers must hold s.mu.
func (s *Session) stopTimerLocked() {
	s.advanceGen++
	if s.advanceTimer != nil {
		s.advanceTimer.Stop()
		s.advanceTimer = nil
	}
}
