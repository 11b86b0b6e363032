package quiz

import (
	"crypto/sha1"
	"encoding/hex"
	"html"
	"math/rand"
	"strings"

	"github.com/aiqualitylab/qa-quiz-agent/internal/opentdb"
)

type Option struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// Question is immutable once built. The correct answer is identified by
// index into the shuffled options.
type Question struct {
	QuestionID   string
	Prompt       string
	Category     string
	Difficulty   string
	Options      []Option
	CorrectIndex int
}

func (q Question) CorrectAnswer() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex].Text
}

// IsCorrect compares the submitted answer to the correct option text.
// Exact match only; no trimming, no case folding.
func (q Question) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer()
}

func (q Question) OptionTexts() []string {
	texts := make([]string, len(q.Options))
	for idx, option := range q.Options {
		texts[idx] = option.Text
	}
	return texts
}

func BuildQuestions(raw []opentdb.RawQuestion) []Question {
	questions := make([]Question, 0, len(raw))
	for _, item := range raw {
		question := buildQuestion(item)
		question.QuestionID = makeQuestionID(question)
		questions = append(questions, question)
	}
	return questions
}

func buildQuestion(raw opentdb.RawQuestion) Question {
	type choice struct {
		text      string
		isCorrect bool
	}

	choices := make([]choice, 0, len(raw.IncorrectAnswers)+1)
	for _, incorrect := range raw.IncorrectAnswers {
		choices = append(choices, choice{
			text: html.UnescapeString(incorrect),
		})
	}
	choices = append(choices, choice{
		text:      html.UnescapeString(raw.CorrectAnswer),
		isCorrect: true,
	})

	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	options := make([]Option, len(choices))
	correctIndex := -1
	for idx, candidate := range choices {
		options[idx] = Option{
			Letter: string(rune('A' + idx)),
			Text:   candidate.text,
		}
		if candidate.isCorrect {
			correctIndex = idx
		}
	}

	return Question{
		Prompt:       html.UnescapeString(raw.Question),
		Category:     html.UnescapeString(raw.Category),
		Difficulty:   raw.Difficulty,
		Options:      options,
		CorrectIndex: correctIndex,
	}
}

func makeQuestionID(question Question) string {
	var keyBuilder strings.Builder
	keyBuilder.WriteString(question.Prompt)
	for _, option := range question.Options {
		keyBuilder.WriteString("|")
		keyBuilder.WriteString(option.Text)
	}

	hash := sha1.Sum([]byte(keyBuilder.String()))
	return "q_" + hex.EncodeToString(hash[:])
}
