package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aiqualitylab/qa-quiz-agent/internal/opentdb"
	"github.com/aiqualitylab/qa-quiz-agent/internal/quiz"
)

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
	case errors.Is(err, quiz.ErrEmptyAnswer):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "answer is required"})
	case errors.Is(err, quiz.ErrNotAwaitingAnswer):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "session is not awaiting an answer"})
	case errors.Is(err, quiz.ErrNotShowingResult):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "nothing to advance past"})
	case errors.Is(err, quiz.ErrSessionFinished):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "session is finished"})
	case errors.Is(err, opentdb.ErrFetchFailed):
		// The trivia feed hiccuped; the client can simply retry the action.
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to fetch questions, please retry"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func writeMethodNotAllowed(w http.ResponseWriter, allowedMethod string) {
	w.Header().Set("Allow", allowedMethod)
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
