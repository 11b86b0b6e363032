package httpapi

import (
	"github.com/aiqualitylab/qa-quiz-agent/internal/quiz"
	"github.com/aiqualitylab/qa-quiz-agent/internal/quizlog"
)

type answerRequest struct {
	Answer string `json:"answer"`
}

type summaryResponse struct {
	SessionID  string     `json:"session_id"`
	State      quiz.State `json:"state"`
	Correct    int        `json:"correct"`
	Incorrect  int        `json:"incorrect"`
	Answered   int        `json:"answered"`
	Percentage float64    `json:"percentage"`
}

type logResponse struct {
	Count   int              `json:"count"`
	Records []quizlog.Record `json:"records"`
}

type errorResponse struct {
	Error string `json:"error"`
}
