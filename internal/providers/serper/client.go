package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"scholarship-go/internal/metrics"
)

const (
	DefaultBaseURL = "https://google.serper.dev/search"
	DefaultCountry = "in"

	providerName = "serper"
)

var (
	// ErrUpstreamUnavailable is returned when the provider could not be
	// reached or answered with a non-200 status.
	ErrUpstreamUnavailable = errors.New("search provider unavailable")
	// ErrMalformedResponse is returned when a 200 body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed search response")
)

type Client struct {
	client  *http.Client
	apiKey  string
	baseURL string
	country string
	logger  *zap.Logger
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithCountry(country string) Option {
	return func(c *Client) {
		if country != "" {
			c.country = country
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
		client:  client,
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		country: DefaultCountry,
		logger:  zap.NewNop(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

type searchRequest struct {
	Q  string `json:"q"`
	GL string `json:"gl"`
}

type searchResponse struct {
	Organic []organicResult `json:"organic"`
}

type organicResult struct {
	Title    string  `json:"title"`
	Link     *string `json:"link"`
	Snippet  string  `json:"snippet"`
	Position int     `json:"position"`
}

// Search returns the link of every organic result in provider order. Results
// without a link are kept as nil entries.
func (c *Client) Search(ctx context.Context, query string) ([]*string, error) {
	body, err := json.Marshal(searchRequest{Q: query, GL: c.country})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordProviderCall(providerName, 0, time.Since(start))
		c.logger.Error("serper request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	metrics.RecordProviderCall(providerName, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("serper returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(text)),
		)
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstreamUnavailable, resp.StatusCode, text)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.logger.Error("serper response decode failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	urls := make([]*string, 0, len(parsed.Organic))
	for _, item := range parsed.Organic {
		urls = append(urls, item.Link)
	}
	c.logger.Debug("serper search done", zap.String("query", query), zap.Int("results", len(urls)))
	return urls, nil
}
