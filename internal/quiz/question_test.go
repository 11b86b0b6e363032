package quiz

import (
	"strings"
	"testing"

	"github.com/aiqualitylab/qa-quiz-agent/internal/opentdb"
)

func TestBuildQuestionsUnescapesAndAssignsID(t *testing.T) {
	raw := []opentdb.RawQuestion{
		{
			Question:         "2 &amp; 2 = ?",
			Category:         "Science &amp; Nature",
			Difficulty:       "easy",
			CorrectAnswer:    "4 &lt; 5",
			IncorrectAnswers: []string{"1", "2", "3"},
		},
	}

	questions := BuildQuestions(raw)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	item := questions[0]
	if item.Prompt != "2 & 2 = ?" {
		t.Fatalf("prompt not unescaped, got %q", item.Prompt)
	}
	if item.Category != "Science & Nature" {
		t.Fatalf("category not unescaped, got %q", item.Category)
	}
	if !strings.HasPrefix(item.QuestionID, "q_") {
		t.Fatalf("unexpected question id format: %q", item.QuestionID)
	}
	if item.CorrectIndex < 0 || item.CorrectIndex >= len(item.Options) {
		t.Fatalf("correct index out of range: %d", item.CorrectIndex)
	}
	if item.CorrectAnswer() != "4 < 5" {
		t.Fatalf("correct answer not unescaped, got %q", item.CorrectAnswer())
	}
}

func TestBuildQuestionsCorrectAnswerAlwaysPresent(t *testing.T) {
	raw := []opentdb.RawQuestion{
		{
			Question:         "Capital of France?",
			CorrectAnswer:    "Paris",
			IncorrectAnswers: []string{"London", "Rome", "Berlin"},
		},
	}

	// Shuffling is random; repeat enough times to cover every permutation class.
	for run := 0; run < 50; run++ {
		questions := BuildQuestions(raw)
		item := questions[0]

		if len(item.Options) != 4 {
			t.Fatalf("expected 4 options, got %d", len(item.Options))
		}

		seen := make(map[string]bool, len(item.Options))
		foundCorrect := false
		for _, option := range item.Options {
			if seen[option.Text] {
				t.Fatalf("duplicate option %q in %+v", option.Text, item.Options)
			}
			seen[option.Text] = true
			if option.Text == "Paris" {
				foundCorrect = true
			}
		}
		if !foundCorrect {
			t.Fatalf("correct answer missing from options: %+v", item.Options)
		}
		if item.Options[item.CorrectIndex].Text != "Paris" {
			t.Fatalf("correct index %d points at %q", item.CorrectIndex, item.Options[item.CorrectIndex].Text)
		}
	}
}

func TestIsCorrectExactMatchOnly(t *testing.T) {
	question := Question{
		Prompt: "Capital of France?",
		Options: []Option{
			{Letter: "A", Text: "Paris"},
			{Letter: "B", Text: "London"},
			{Letter: "C", Text: "Rome"},
			{Letter: "D", Text: "Berlin"},
		},
		CorrectIndex: 0,
	}

	cases := []struct {
		answer string
		want   bool
	}{
		{"Paris", true},
		{"Rome", false},
		{"paris", false},
		{" Paris", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := question.IsCorrect(tc.answer); got != tc.want {
			t.Fatalf("IsCorrect(%q) = %v, want %v", tc.answer, got, tc.want)
		}
	}
}

func TestMakeQuestionIDDiffersWhenOptionOrderDiffers(t *testing.T) {
	q1 := Question{
		Prompt: "Ordering matters",
		Options: []Option{
			{Letter: "A", Text: "One"},
			{Letter: "B", Text: "Two"},
		},
	}
	q2 := Question{
		Prompt: "Ordering matters",
		Options: []Option{
			{Letter: "A", Text: "Two"},
			{Letter: "B", Text: "One"},
		},
	}

	if makeQuestionID(q1) == makeQuestionID(q2) {
		t.Fatalf("expected different IDs for different option ordering")
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		correct  int
		answered int
		want     float64
	}{
		{0, 0, 0},
		{1, 1, 100},
		{1, 2, 50},
		{0, 4, 0},
		{3, 4, 75},
	}

	for _, tc := range cases {
		if got := Percentage(tc.correct, tc.answered); got != tc.want {
			t.Fatalf("Percentage(%d, %d) = %v, want %v", tc.correct, tc.answered, got, tc.want)
		}
	}
}
