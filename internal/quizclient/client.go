package quizclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aiqualitylab/qa-quiz-agent/internal/quiz"
)

var ErrServiceUnavailable = errors.New("quiz service unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type Summary struct {
	SessionID  string     `json:"session_id"`
	State      quiz.State `json:"state"`
	Correct    int        `json:"correct"`
	Incorrect  int        `json:"incorrect"`
	Answered   int        `json:"answered"`
	Percentage float64    `json:"percentage"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPClient) StartSession(ctx context.Context) (quiz.Snapshot, error) {
	var payload quiz.Snapshot
	if err := c.doJSON(ctx, http.MethodPost, "/sessions", nil, &payload); err != nil {
		return quiz.Snapshot{}, err
	}
	return payload, nil
}

func (c *HTTPClient) GetSession(ctx context.Context, sessionID string) (quiz.Snapshot, error) {
	var payload quiz.Snapshot
	if err := c.doJSON(ctx, http.MethodGet, "/sessions/"+url.PathEscape(sessionID), nil, &payload); err != nil {
		return quiz.Snapshot{}, err
	}
	return payload, nil
}

func (c *HTTPClient) SubmitAnswer(ctx context.Context, sessionID, answer string) (quiz.Snapshot, error) {
	var payload quiz.Snapshot
	path := "/sessions/" + url.PathEscape(sessionID) + "/answers"
	if err := c.doJSON(ctx, http.MethodPost, path, answerRequest{Answer: answer}, &payload); err != nil {
		return quiz.Snapshot{}, err
	}
	return payload, nil
}

func (c *HTTPClient) Advance(ctx context.Context, sessionID string) (quiz.Snapshot, error) {
	var payload quiz.Snapshot
	path := "/sessions/" + url.PathEscape(sessionID) + "/advance"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &payload); err != nil {
		return quiz.Snapshot{}, err
	}
	return payload, nil
}

func (c *HTTPClient) GetSummary(ctx context.Context, sessionID string) (Summary, error) {
	var payload Summary
	path := "/sessions/" + url.PathEscape(sessionID) + "/summary"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return Summary{}, err
	}
	return payload, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, requestBody, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
