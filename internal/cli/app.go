package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aiqualitylab/qa-quiz-agent/internal/quiz"
	"github.com/aiqualitylab/qa-quiz-agent/internal/quizclient"
)

const (
	defaultServer      = "http://127.0.0.1:8080"
	defaultHTTPTimeout = 60 * time.Second
	maxInvalidAnswers  = 3
)

type Config struct {
	ServerURL   string
	HTTPTimeout time.Duration
}

// Run plays one full quiz session against the server. The terminal flow
// advances as soon as the player has read the explanation, instead of
// waiting out the server's auto-advance delay.
func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	serverURL := strings.TrimSpace(cfg.ServerURL)
	if serverURL == "" {
		serverURL = defaultServer
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	client := quizclient.NewHTTPClient(serverURL, &http.Client{Timeout: timeout})
	reader := bufio.NewReader(in)

	snapshot, err := client.StartSession(ctx)
	if err != nil {
		return describeClientError(err, serverURL)
	}

	fmt.Fprintf(out, "Session %s: %d questions.\n", snapshot.SessionID, snapshot.QuestionCount)

	for snapshot.State != quiz.StateFinished {
		if snapshot.Question == nil {
			return errors.New("server returned no question for an active session")
		}

		printQuestion(out, snapshot.QuestionNumber, snapshot.QuestionCount, *snapshot.Question)

		answer, ok := promptAnswer(reader, out, snapshot.Question.Options)
		if !ok {
			fmt.Fprintln(out, "Too many invalid inputs, quitting.")
			return nil
		}

		snapshot, err = client.SubmitAnswer(ctx, snapshot.SessionID, answer)
		if err != nil {
			return describeClientError(err, serverURL)
		}

		if outcome := snapshot.LastOutcome; outcome != nil {
			fmt.Fprintln(out)
			if outcome.Correct {
				fmt.Fprintln(out, "Correct!")
			} else {
				fmt.Fprintf(out, "Wrong. Correct answer was %s\n", outcome.CorrectAnswer)
			}
			fmt.Fprintf(out, "\n%s\n", outcome.Explanation)
		}

		if snapshot.State == quiz.StateShowingExplanation {
			fmt.Fprint(out, "\nPress enter for the next question...")
			if _, err := reader.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			snapshot, err = client.Advance(ctx, snapshot.SessionID)
			if err != nil {
				// The auto-advance timer may beat a slow reader to the next
				// question; re-sync with the server instead of giving up.
				var apiErr *quizclient.APIError
				if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
					return describeClientError(err, serverURL)
				}
				snapshot, err = client.GetSession(ctx, snapshot.SessionID)
				if err != nil {
					return describeClientError(err, serverURL)
				}
			}
		}
	}

	summary, err := client.GetSummary(ctx, snapshot.SessionID)
	if err != nil {
		return describeClientError(err, serverURL)
	}

	fmt.Fprintf(out, "\nFinal score: %d/%d (%.1f%%)\n", summary.Correct, summary.Answered, summary.Percentage)
	fmt.Fprintf(out, "Correct: %d  Wrong: %d\n", summary.Correct, summary.Incorrect)
	return nil
}

func printQuestion(out io.Writer, number, total int, question quiz.PublicQuestion) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d/%d: %s\n", number, total, question.Prompt)
	if question.Category != "" {
		fmt.Fprintf(out, "(%s, %s)\n", question.Category, question.Difficulty)
	}
	fmt.Fprintln(out)
	for _, option := range question.Options {
		fmt.Fprintf(out, "%s. %s\n", option.Letter, option.Text)
	}
	fmt.Fprintln(out)
}

// promptAnswer reads a letter and returns the matching option text, since
// the server compares answer text, not letters.
func promptAnswer(reader *bufio.Reader, out io.Writer, options []quiz.Option) (string, bool) {
	if len(options) < 1 {
		return "", false
	}

	maxLetter := byte('A' + len(options) - 1)
	for attempt := 1; attempt <= maxInvalidAnswers; attempt++ {
		fmt.Fprintf(out, "Your answer (A-%c): ", maxLetter)

		line, err := reader.ReadString('\n')
		if err != nil {
			return "", false
		}

		answer := strings.ToUpper(strings.TrimSpace(line))
		if len(answer) == 1 {
			letter := answer[0]
			if letter >= 'A' && letter <= maxLetter {
				return options[int(letter-'A')].Text, true
			}
		}

		if attempt < maxInvalidAnswers {
			fmt.Fprintf(out, "Invalid input. Please enter a letter A-%c.\n", maxLetter)
		}
	}

	return "", false
}

func describeClientError(err error, serverURL string) error {
	if errors.Is(err, quizclient.ErrServiceUnavailable) {
		return fmt.Errorf("quiz service unavailable at %s", serverURL)
	}
	return err
}
