package quizlog

import (
	"context"
	"errors"
	"time"
)

// ErrLogWrite wraps failures to persist a round. Callers treat the log as
// best-effort and must not abort a running session on it.
var ErrLogWrite = errors.New("quiz log write failed")

// Record is one completed round. Written once, never mutated.
type Record struct {
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	YourAnswer    string    `json:"your_answer"`
	CorrectAnswer string    `json:"correct_answer"`
	Correct       bool      `json:"correct"`
	Explanation   string    `json:"explanation"`
	AnsweredAt    time.Time `json:"answered_at"`
}

type Store interface {
	Append(ctx context.Context, record Record) error
	Records(ctx context.Context) ([]Record, error)
	Close() error
}
