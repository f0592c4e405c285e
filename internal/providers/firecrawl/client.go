package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"scholarship-go/internal/metrics"
)

const (
	DefaultBaseURL      = "https://api.firecrawl.dev/v1/extract"
	DefaultPollInterval = 2 * time.Second
	DefaultPollTimeout  = 5 * time.Minute

	providerName = "firecrawl"
)

var (
	ErrNoURLs     = errors.New("no urls to extract from")
	ErrJobFailed  = errors.New("extract job failed")
	ErrJobTimeout = errors.New("extract job did not finish in time")
)

// StatusError reports a non-2xx answer from the extract API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("firecrawl error: %d %s", e.StatusCode, e.Body)
}

type Request struct {
	URLs   []*string      `json:"urls"`
	Prompt string         `json:"prompt"`
	Schema map[string]any `json:"schema"`
}

type Client struct {
	client       *http.Client
	apiKey       string
	baseURL      string
	pollInterval time.Duration
	pollTimeout  time.Duration
	logger       *zap.Logger
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithPollTimeout bounds the total time spent waiting for an asynchronous job.
func WithPollTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.pollTimeout = timeout
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(client *http.Client, apiKey string, options ...Option) *Client {
	c := &Client{
		client:       client,
		apiKey:       apiKey,
		baseURL:      DefaultBaseURL,
		pollInterval: DefaultPollInterval,
		pollTimeout:  DefaultPollTimeout,
		logger:       zap.NewNop(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// envelope holds the job bookkeeping fields of an extract response. Everything
// else in the body is left to the caller.
type envelope struct {
	Success *bool           `json:"success"`
	ID      string          `json:"id"`
	Status  string          `json:"status"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// done reports whether the body is a final answer: a terminal status, or
// extracted data with no status at all.
func (e envelope) done() bool {
	if isTerminal(e.Status) {
		return true
	}
	return e.Status == "" && len(e.Data) > 0 && string(e.Data) != "null"
}

// Extract submits the request and returns the provider's final payload
// without validating it against the schema. Asynchronous jobs are polled
// until they complete, the poll timeout elapses, or ctx ends.
func (c *Client) Extract(ctx context.Context, input Request) (json.RawMessage, error) {
	if len(input.URLs) == 0 {
		return nil, ErrNoURLs
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	payload, err := c.do(ctx, http.MethodPost, c.baseURL, body)
	if err != nil {
		return nil, err
	}

	env, ok := parseEnvelope(payload)
	if !ok {
		return asJSON(payload), nil
	}
	if env.Success != nil && !*env.Success {
		return nil, fmt.Errorf("%w: %s", ErrJobFailed, env.Error)
	}
	if env.ID == "" || env.done() {
		return c.finish(payload, env)
	}

	c.logger.Info("firecrawl extract job started", zap.String("job_id", env.ID), zap.Int("urls", len(input.URLs)))
	return c.poll(ctx, env.ID)
}

func (c *Client) poll(ctx context.Context, id string) (json.RawMessage, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(c.pollTimeout)
	defer deadline.Stop()

	statusURL := c.baseURL + "/" + id
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, fmt.Errorf("%w: job %s after %s", ErrJobTimeout, id, c.pollTimeout)
		case <-ticker.C:
		}

		payload, err := c.do(ctx, http.MethodGet, statusURL, nil)
		if err != nil {
			return nil, err
		}

		env, ok := parseEnvelope(payload)
		if !ok {
			return asJSON(payload), nil
		}
		if env.done() {
			return c.finish(payload, env)
		}
		if env.Success != nil && !*env.Success {
			return nil, fmt.Errorf("%w: %s", ErrJobFailed, env.Error)
		}
		c.logger.Debug("firecrawl extract job pending", zap.String("job_id", id), zap.String("status", env.Status))
	}
}

func (c *Client) finish(payload []byte, env envelope) (json.RawMessage, error) {
	switch env.Status {
	case "failed", "cancelled":
		return nil, fmt.Errorf("%w: job %s %s: %s", ErrJobFailed, env.ID, env.Status, env.Error)
	}
	return json.RawMessage(payload), nil
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordProviderCall(providerName, 0, time.Since(start))
		return nil, fmt.Errorf("firecrawl request: %w", err)
	}
	defer resp.Body.Close()
	metrics.RecordProviderCall(providerName, resp.StatusCode, time.Since(start))

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read firecrawl response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(payload)}
	}
	return payload, nil
}

func parseEnvelope(payload []byte) (envelope, bool) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return envelope{}, false
	}
	return env, true
}

func isTerminal(status string) bool {
	switch status {
	case "completed", "failed", "cancelled":
		return true
	default:
		return false
	}
}

// asJSON keeps payloads that are not a JSON object representable in a JSON
// response by encoding them as a string.
func asJSON(payload []byte) json.RawMessage {
	if json.Valid(payload) {
		return json.RawMessage(payload)
	}
	raw, _ := json.Marshal(string(payload))
	return raw
}
