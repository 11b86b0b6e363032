package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aiqualitylab/qa-quiz-agent/internal/config"
	"github.com/aiqualitylab/qa-quiz-agent/internal/httpapi"
	"github.com/aiqualitylab/qa-quiz-agent/internal/logger"
	"github.com/aiqualitylab/qa-quiz-agent/internal/openai"
	"github.com/aiqualitylab/qa-quiz-agent/internal/opentdb"
	"github.com/aiqualitylab/qa-quiz-agent/internal/quiz"
	"github.com/aiqualitylab/qa-quiz-agent/internal/quizlog"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	addrFlag := flag.String("addr", "", "HTTP listen address (overrides config)")
	flag.Parse()

	if err := run(*configPath, *addrFlag); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath, addrOverride string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addrOverride != "" {
		cfg.Addr = addrOverride
	}

	log, err := logger.New(cfg.Mode)
	if err != nil {
		return err
	}
	defer log.Sync()

	// Missing OPENAI_API_KEY fails here, before anything listens.
	explainer, err := openai.NewClient(log, nil)
	if err != nil {
		return err
	}

	store, err := openLogStore(cfg.Log)
	if err != nil {
		return err
	}
	defer store.Close()

	trivia := opentdb.NewClient(&http.Client{Timeout: 15 * time.Second})

	service, err := quiz.NewService(log, trivia.FetchQuestions, explainer, store, quiz.Config{
		QuestionCount: cfg.QuestionCount,
		AdvanceDelay:  cfg.AdvanceDelay(),
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewRouter(service, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("quiz-web listening",
		"addr", cfg.Addr,
		"question_count", cfg.QuestionCount,
		"advance_delay", cfg.AdvanceDelay().String(),
		"log_backend", cfg.Log.Backend,
		"log_path", cfg.Log.Path,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func openLogStore(cfg config.LogConfig) (quizlog.Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return quizlog.NewSQLiteStore(cfg.Path)
	default:
		return quizlog.NewFileStore(cfg.Path), nil
	}
}
