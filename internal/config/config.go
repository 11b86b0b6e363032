package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultAddr          = ":8080"
	defaultMode          = "dev"
	defaultQuestionCount = 5
	defaultAdvanceDelay  = 20
	defaultLogPath       = "quiz_log.json"

	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type LogConfig struct {
	// Backend is "json" (full read-modify-write of a JSON array, the
	// historical format) or "sqlite" (per-round inserts).
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type Config struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"`

	// QuestionCount is how many rounds a session runs before finishing.
	QuestionCount int `yaml:"question_count"`
	// AdvanceDelaySeconds is how long the explanation stays up before the
	// session auto-advances. A user action can cut it short.
	AdvanceDelaySeconds int `yaml:"advance_delay_seconds"`

	Log LogConfig `yaml:"log"`
}

// Load reads the optional YAML file at path, then overlays environment
// variables on top. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Config{
		Addr:                defaultAddr,
		Mode:                defaultMode,
		QuestionCount:       defaultQuestionCount,
		AdvanceDelaySeconds: defaultAdvanceDelay,
		Log: LogConfig{
			Backend: BackendJSON,
			Path:    defaultLogPath,
		},
	}

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	overlayEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("ADDR")); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("QUIZ_MODE")); v != "" {
		cfg.Mode = v
	}
	if v, ok := envInt("QUIZ_QUESTION_COUNT"); ok {
		cfg.QuestionCount = v
	}
	if v, ok := envInt("QUIZ_ADVANCE_DELAY_SECONDS"); ok {
		cfg.AdvanceDelaySeconds = v
	}
	if v := strings.TrimSpace(os.Getenv("QUIZ_LOG_BACKEND")); v != "" {
		cfg.Log.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("QUIZ_LOG_PATH")); v != "" {
		cfg.Log.Path = v
	}
}

func (c Config) validate() error {
	if c.QuestionCount <= 0 {
		return fmt.Errorf("question_count must be a positive integer, got %d", c.QuestionCount)
	}
	if c.AdvanceDelaySeconds < 0 {
		return fmt.Errorf("advance_delay_seconds must not be negative, got %d", c.AdvanceDelaySeconds)
	}
	switch c.Log.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("log.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Log.Backend)
	}
	if strings.TrimSpace(c.Log.Path) == "" {
		return fmt.Errorf("log.path must not be empty")
	}
	return nil
}

func (c Config) AdvanceDelay() time.Duration {
	return time.Duration(c.AdvanceDelaySeconds) * time.Second
}

func envInt(key string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
