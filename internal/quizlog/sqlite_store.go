package quizlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is the hardened log backend: each round is a single INSERT, so
// concurrent writers append instead of rewriting each other's entries.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		path = "quiz_log.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS rounds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		question TEXT NOT NULL,
		options_json TEXT NOT NULL,
		your_answer TEXT NOT NULL,
		correct_answer TEXT NOT NULL,
		correct INTEGER NOT NULL,
		explanation TEXT NOT NULL,
		answered_at_unix INTEGER NOT NULL
	);`)
	return err
}

func (s *SQLiteStore) Append(ctx context.Context, record Record) error {
	optionsJSON, err := json.Marshal(record.Options)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLogWrite, err)
	}

	correct := 0
	if record.Correct {
		correct = 1
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO rounds (question, options_json, your_answer, correct_answer, correct, explanation, answered_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.Question,
		string(optionsJSON),
		record.YourAnswer,
		record.CorrectAnswer,
		correct,
		record.Explanation,
		record.AnsweredAt.UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLogWrite, err)
	}
	return nil
}

func (s *SQLiteStore) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT question, options_json, your_answer, correct_answer, correct, explanation, answered_at_unix
		 FROM rounds ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			record       Record
			optionsJSON  string
			correct      int
			answeredUnix int64
		)
		if err := rows.Scan(
			&record.Question,
			&optionsJSON,
			&record.YourAnswer,
			&record.CorrectAnswer,
			&correct,
			&record.Explanation,
			&answeredUnix,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(optionsJSON), &record.Options); err != nil {
			return nil, err
		}
		record.Correct = correct != 0
		record.AnsweredAt = time.Unix(0, answeredUnix).UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
