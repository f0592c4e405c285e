package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarship-go/internal/config"
	"scholarship-go/internal/providers/firecrawl"
)

type staticSearcher []*string

func (s staticSearcher) Search(context.Context, string) ([]*string, error) { return s, nil }

type staticExtractor string

func (e staticExtractor) Extract(context.Context, firecrawl.Request) (json.RawMessage, error) {
	return json.RawMessage(e), nil
}

func testConfig() *config.Config {
	return &config.Config{
		HTTPPort:              "0",
		SerperAPIKey:          "s",
		FirecrawlAPIKey:       "f",
		SchemaVariant:         "extended",
		UpstreamFailurePolicy: config.PolicyEmpty,
		CORSAllowedOrigins:    []string{"*"},
		HTTPClientTimeout:     time.Second,
	}
}

func TestBuild_RequiresConfig(t *testing.T) {
	_, err := NewBuilder(nil).Build()
	assert.Error(t, err)
}

func TestBuild_RejectsUnknownVariant(t *testing.T) {
	cfg := testConfig()
	cfg.SchemaVariant = "everything"
	_, err := NewBuilder(cfg).Build()
	assert.ErrorContains(t, err, "everything")
}

func TestBuild_WiresSearchRoute(t *testing.T) {
	link := "https://a.example"
	application, err := NewBuilder(testConfig(),
		WithSearcher(staticSearcher{&link}),
		WithExtractor(staticExtractor(`{"scholarships":[]}`)),
	).Build()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	application.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?query=scholarships&financial_need=true", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"query":"scholarships need-based","results":{"scholarships":[]}}`, rec.Body.String())
}

func TestRun_StopsWhenContextCancelled(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	application, err := NewBuilder(testConfig(),
		WithHTTPServer(&http.Server{Addr: addr, Handler: http.NotFoundHandler()}),
	).Build()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
