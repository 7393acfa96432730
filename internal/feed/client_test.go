package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/powderlines/liftwatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFeedConfig(url string, retries int) config.FeedConfig {
	return config.FeedConfig{URL: url, TimeoutSecs: 5, RetryAttempts: retries}
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"areas": [{"name": "Summit", "lifts": [{"name": "A", "status": "Open"}]}]}`))
	}))
	defer server.Close()

	client := NewClient(testFeedConfig(server.URL, 0), zerolog.Nop())
	doc, err := client.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, doc.Areas, 1)
	require.Len(t, doc.Areas[0].Lifts, 1)
	assert.Equal(t, "A", doc.Areas[0].Lifts[0].Name)
	assert.Equal(t, "Open", doc.Areas[0].Lifts[0].Status)
}

func TestFetch_RetriesThenSucceeds(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "flaky", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"areas": []}`))
	}))
	defer server.Close()

	client := NewClient(testFeedConfig(server.URL, 2), zerolog.Nop())
	_, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetch_ExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(testFeedConfig(server.URL, 1), zerolog.Nop())
	_, err := client.Fetch(context.Background())

	assert.Error(t, err)
}

func TestFetch_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance page</html>`))
	}))
	defer server.Close()

	client := NewClient(testFeedConfig(server.URL, 0), zerolog.Nop())
	_, err := client.Fetch(context.Background())

	assert.Error(t, err)
}
