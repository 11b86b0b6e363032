package quizlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileStore keeps the log as a single JSON array and rewrites the whole file
// on every append. A mutex serializes appends within this process; a second
// process writing the same file can still clobber entries. That matches the
// historical format, so readers of an existing quiz_log.json keep working.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	if path == "" {
		path = "quiz_log.json"
	}
	return &FileStore{path: path}
}

func (s *FileStore) Append(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.readAll()
	records = append(records, record)

	encoded, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLogWrite, err)
	}
	if err := os.WriteFile(s.path, encoded, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrLogWrite, err)
	}
	return nil
}

func (s *FileStore) Records(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll(), nil
}

func (s *FileStore) Close() error {
	return nil
}

// readAll treats a missing or unparseable file as an empty log. Corrupt
// content is dropped on the next append rather than failing the session.
func (s *FileStore) readAll() []Record {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil
	}
	return records
}
