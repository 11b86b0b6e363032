package httpapi

import (
	"github.com/aiqualitylab/qa-quiz-agent/internal/logger"
	"github.com/aiqualitylab/qa-quiz-agent/internal/quiz"
)

type API struct {
	service *quiz.Service
	log     *logger.Logger
}

func NewAPI(service *quiz.Service, log *logger.Logger) *API {
	if log == nil {
		log = logger.NewNop()
	}
	return &API{
		service: service,
		log:     log.With("component", "httpapi"),
	}
}
