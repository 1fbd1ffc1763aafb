package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylangamachefl/grocery-deal-finder/internal/observability"
)

const chatOK = `{"choices": [{"message": {"role": "assistant", "content": "{\"ok\": true}"}}]}`

func newRetryTestClient(t *testing.T, baseURL string, maxRetries int) *Client {
	t.Helper()
	c, err := NewClient(Config{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		MaxRetries: maxRetries,
		Logger:     observability.Nop(),
	})
	require.NoError(t, err)
	// Real backoff delays have no place in a unit test.
	c.retry.InitialBackoff = time.Millisecond
	c.retry.MaxBackoff = time.Millisecond
	return c
}

func TestNewClient_MaxRetriesConfigured(t *testing.T) {
	c, err := NewClient(Config{APIKey: "k", MaxRetries: 7, Logger: observability.Nop()})
	require.NoError(t, err)
	assert.Equal(t, 7, c.retry.MaxRetries)

	c, err = NewClient(Config{APIKey: "k", Logger: observability.Nop()})
	require.NoError(t, err)
	assert.Equal(t, maxRetries, c.retry.MaxRetries, "unset max retries falls back to the default")
}

func TestCompleteJSON_RetriesUntilSuccess(t *testing.T) {
	var attempts atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(chatOK))
	}))
	defer server.Close()

	c := newRetryTestClient(t, server.URL, 2)
	content, err := c.CompleteJSON(context.Background(), []Message{TextMessage("user", "hi")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, content)
	assert.Equal(t, int64(3), attempts.Load())
}

func TestCompleteJSON_RetryBudgetExhausted(t *testing.T) {
	var attempts atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := newRetryTestClient(t, server.URL, 1)
	_, err := c.CompleteJSON(context.Background(), []Message{TextMessage("user", "hi")})
	require.Error(t, err)
	assert.Equal(t, int64(2), attempts.Load(), "one attempt plus one retry")
}

func TestCompleteJSON_NoRetryOnClientError(t *testing.T) {
	var attempts atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "bad request"}`))
	}))
	defer server.Close()

	c := newRetryTestClient(t, server.URL, 3)
	_, err := c.CompleteJSON(context.Background(), []Message{TextMessage("user", "hi")})
	require.Error(t, err)
	assert.Equal(t, int64(1), attempts.Load(), "4xx responses are not retried")
	assert.Contains(t, err.Error(), "status 400")
}
