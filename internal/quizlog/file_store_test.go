package quizlog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testRecord(question, answer string, correct bool) Record {
	return Record{
		Question:      question,
		Options:       []string{"Paris", "London", "Rome", "Berlin"},
		YourAnswer:    answer,
		CorrectAnswer: "Paris",
		Correct:       correct,
		Explanation:   "Paris is the capital of France.",
		AnsweredAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFileStoreAppendToAbsentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz_log.json")
	store := NewFileStore(path)

	if err := store.Append(context.Background(), testRecord("Capital of France?", "Paris", true)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, err := store.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected single-element array, got %d", len(records))
	}
	if records[0].YourAnswer != "Paris" || !records[0].Correct {
		t.Fatalf("record round-trip mismatch: %+v", records[0])
	}
}

func TestFileStoreAppendPreservesPriorRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz_log.json")
	store := NewFileStore(path)

	first := testRecord("Capital of France?", "Paris", true)
	second := testRecord("Largest planet?", "Mars", false)

	if err := store.Append(context.Background(), first); err != nil {
		t.Fatalf("Append first: %v", err)
	}
	if err := store.Append(context.Background(), second); err != nil {
		t.Fatalf("Append second: %v", err)
	}

	records, err := store.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected length 2, got %d", len(records))
	}
	if records[0].Question != "Capital of France?" {
		t.Fatalf("earlier record reordered or mutated: %+v", records[0])
	}
	if records[1].Question != "Largest planet?" {
		t.Fatalf("appended record wrong: %+v", records[1])
	}
}

func TestFileStoreRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz_log.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	store := NewFileStore(path)
	record := testRecord("Capital of France?", "Rome", false)
	if err := store.Append(context.Background(), record); err != nil {
		t.Fatalf("Append over corrupt file: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		t.Fatalf("log is not valid JSON after recovery: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected recovery to write a single-element array, got %d", len(records))
	}
}

func TestFileStoreRecordsOnMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))

	records, err := store.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty log, got %d", len(records))
	}
}
