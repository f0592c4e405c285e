package firecrawl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func testRequest() Request {
	return Request{
		URLs:   []*string{ptr("https://a.example"), nil},
		Prompt: "Extract scholarships",
		Schema: map[string]any{"type": "object"},
	}
}

func TestExtract_EmptyURLsMakesNoCall(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	client := NewClient(ts.Client(), "fc-key", WithBaseURL(ts.URL))
	_, err := client.Extract(context.Background(), Request{Prompt: "p"})
	assert.ErrorIs(t, err, ErrNoURLs)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestExtract_PassesInputsThroughAndReturnsPayload(t *testing.T) {
	const payload = `{"scholarships":[{"name":"X","description":"Y","application_link":"https://a.example/apply","application_deadline":"2025-01-01"}]}`

	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer fc-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(payload))
	}))
	defer ts.Close()

	client := NewClient(ts.Client(), "fc-key", WithBaseURL(ts.URL))
	result, err := client.Extract(context.Background(), testRequest())
	require.NoError(t, err)

	assert.JSONEq(t, payload, string(result))
	assert.Equal(t, []any{"https://a.example", nil}, got["urls"])
	assert.Equal(t, "Extract scholarships", got["prompt"])
	assert.Equal(t, map[string]any{"type": "object"}, got["schema"])
}

func TestExtract_PollsAsyncJob(t *testing.T) {
	const done = `{"success":true,"status":"completed","data":{"scholarships":[]},"expiresAt":"2025-01-02T00:00:00Z"}`

	var polls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/extract", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"id":"job-1"}`))
	})
	mux.HandleFunc("/extract/job-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer fc-key", r.Header.Get("Authorization"))
		if atomic.AddInt32(&polls, 1) < 3 {
			_, _ = w.Write([]byte(`{"success":true,"status":"processing"}`))
			return
		}
		_, _ = w.Write([]byte(done))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := NewClient(ts.Client(), "fc-key", WithBaseURL(ts.URL+"/extract"), WithPollInterval(time.Millisecond))
	result, err := client.Extract(context.Background(), testRequest())
	require.NoError(t, err)

	assert.JSONEq(t, done, string(result))
	assert.Equal(t, int32(3), atomic.LoadInt32(&polls))
}

func TestExtract_FailedJob(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/extract", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"id":"job-2"}`))
	})
	mux.HandleFunc("/extract/job-2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"status":"failed","error":"boom"}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := NewClient(ts.Client(), "k", WithBaseURL(ts.URL+"/extract"), WithPollInterval(time.Millisecond))
	_, err := client.Extract(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrJobFailed)
	assert.Contains(t, err.Error(), "boom")
}

func TestExtract_UnsuccessfulSubmit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"invalid schema"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.Client(), "k", WithBaseURL(ts.URL))
	_, err := client.Extract(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrJobFailed)
}

func TestExtract_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.Client(), "k", WithBaseURL(ts.URL))
	_, err := client.Extract(context.Background(), testRequest())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestExtract_UnstructuredPayloadBecomesString(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`plain text`))
	}))
	defer ts.Close()

	client := NewClient(ts.Client(), "k", WithBaseURL(ts.URL))
	result, err := client.Extract(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, `"plain text"`, string(result))
}

func TestExtract_ContextCancelledWhilePolling(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/extract", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"id":"job-3"}`))
	})
	mux.HandleFunc("/extract/job-3", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"status":"processing"}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(ts.Client(), "k", WithBaseURL(ts.URL+"/extract"), WithPollInterval(5*time.Millisecond))
	_, err := client.Extract(ctx, testRequest())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExtract_StatusBodyWithDataButNoStatusIsFinal(t *testing.T) {
	const done = `{"success":true,"data":{"scholarships":[{"name":"X"}]}}`

	var polls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/extract", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"id":"job-4"}`))
	})
	mux.HandleFunc("/extract/job-4", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&polls, 1)
		_, _ = w.Write([]byte(done))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := NewClient(ts.Client(), "k", WithBaseURL(ts.URL+"/extract"), WithPollInterval(time.Millisecond))
	result, err := client.Extract(context.Background(), testRequest())
	require.NoError(t, err)

	assert.JSONEq(t, done, string(result))
	assert.Equal(t, int32(1), atomic.LoadInt32(&polls))
}

func TestExtract_PollTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/extract", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"id":"job-5"}`))
	})
	mux.HandleFunc("/extract/job-5", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"status":"processing","data":null}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := NewClient(ts.Client(), "k",
		WithBaseURL(ts.URL+"/extract"),
		WithPollInterval(time.Millisecond),
		WithPollTimeout(30*time.Millisecond),
	)
	_, err := client.Extract(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrJobTimeout)
}
