package httpapi

import (
	"net/http"

	"github.com/aiqualitylab/qa-quiz-agent/internal/logger"
	"github.com/aiqualitylab/qa-quiz-agent/internal/quiz"
)

func NewRouter(service *quiz.Service, log *logger.Logger) http.Handler {
	api := NewAPI(service, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/", api.HandleIndex)
	mux.HandleFunc("/sessions", api.HandleCreateSession)
	mux.HandleFunc("/sessions/{session_id}", api.HandleSession)
	mux.HandleFunc("/sessions/{session_id}/answers", api.HandleSubmitAnswer)
	mux.HandleFunc("/sessions/{session_id}/advance", api.HandleAdvance)
	mux.HandleFunc("/sessions/{session_id}/summary", api.HandleSummary)
	mux.HandleFunc("/log", api.HandleLog)

	return mux
}
