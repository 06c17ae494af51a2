package examapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nqtien/examinator/internal/model"
)

var (
	// ErrSubmissionFailed wraps any transport or backend failure while
	// submitting a completed attempt.
	ErrSubmissionFailed = errors.New("submission failed")
	// ErrResultFetchFailed wraps failures while retrieving a stored result.
	ErrResultFetchFailed = errors.New("result fetch failed")
)

// Client talks to the external Examinator backend over its slug-based test
// contract. The session engine only depends on this interface, so it runs
// unchanged against any backend variant (or a stub in tests).
type Client interface {
	Preview(ctx context.Context, slug string) (*model.TestPreview, error)
	Start(ctx context.Context, slug, studentName string) (*model.TestStart, error)
	Submit(ctx context.Context, slug string, attemptID int64, answers []model.Answer) error
	FetchResult(ctx context.Context, slug string, attemptID int64) (*model.Result, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient builds the default net/http backed Client.
func NewHTTPClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type startRequest struct {
	StudentName string `json:"student_name"`
}

type submitRequest struct {
	AttemptID int64          `json:"attempt_id"`
	Answers   []model.Answer `json:"answers"`
}

func (c *httpClient) Preview(ctx context.Context, slug string) (*model.TestPreview, error) {
	var preview model.TestPreview
	url := fmt.Sprintf("%s/api/t/%s/preview/", c.baseURL, slug)
	if err := c.do(ctx, http.MethodGet, url, nil, &preview); err != nil {
		return nil, fmt.Errorf("failed to fetch preview for slug %q: %w", slug, err)
	}
	return &preview, nil
}

func (c *httpClient) Start(ctx context.Context, slug, studentName string) (*model.TestStart, error) {
	var start model.TestStart
	url := fmt.Sprintf("%s/api/t/%s/start/", c.baseURL, slug)
	if err := c.do(ctx, http.MethodPost, url, startRequest{StudentName: studentName}, &start); err != nil {
		return nil, fmt.Errorf("failed to start attempt for slug %q: %w", slug, err)
	}
	return &start, nil
}

// Submit ships the full answer set for an attempt. The backend treats
// submission as an idempotent upsert keyed by attempt id, so retrying after
// a network failure does not duplicate anything.
func (c *httpClient) Submit(ctx context.Context, slug string, attemptID int64, answers []model.Answer) error {
	url := fmt.Sprintf("%s/api/t/%s/submit/", c.baseURL, slug)
	if err := c.do(ctx, http.MethodPost, url, submitRequest{AttemptID: attemptID, Answers: answers}, nil); err != nil {
		return fmt.Errorf("%w: attempt %d: %v", ErrSubmissionFailed, attemptID, err)
	}
	return nil
}

func (c *httpClient) FetchResult(ctx context.Context, slug string, attemptID int64) (*model.Result, error) {
	var result model.Result
	url := fmt.Sprintf("%s/api/t/%s/results/%d/", c.baseURL, slug, attemptID)
	if err := c.do(ctx, http.MethodGet, url, nil, &result); err != nil {
		return nil, fmt.Errorf("%w: attempt %d: %v", ErrResultFetchFailed, attemptID, err)
	}
	return &result, nil
}

func (c *httpClient) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Warn().Str("url", url).Int("status", resp.StatusCode).Msg("Exam API returned non-2xx status")
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(payload))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
