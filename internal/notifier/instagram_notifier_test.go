package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/powderlines/liftwatch/internal/config"
	"github.com/powderlines/liftwatch/internal/datastore"
	"github.com/powderlines/liftwatch/internal/errorutil"
	"github.com/powderlines/liftwatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotificationConfig(baseURL string) config.NotificationConfig {
	return config.NotificationConfig{
		AccessToken:        "token",
		BusinessAccountID:  "17841400000000000",
		GraphAPIBaseURL:    baseURL,
		PublishTimeoutSecs: 2,
		PollIntervalSecs:   1,
	}
}

func pendingEvent(t *testing.T, es *datastore.EventStore) models.ChangeEvent {
	t.Helper()
	ev := models.ChangeEvent{
		ID:             "ev-1",
		Key:            "2025-01-15@1000-vs-2025-01-14@1500",
		CreatedAt:      "2025-01-15T17:05:00Z",
		ScreenshotPath: "https://img.example/status.png",
		Summary:        models.EventSummary{OpenedTotal: 3, LiftsOpened: 2, TrailsOpened: 1},
		Detail: models.EventDetail{
			LiftsOpened:  []string{"B", "C"},
			TrailsOpened: []string{"Cruiser"},
		},
	}
	require.NoError(t, es.Write(ev))
	return ev
}

func newGraphServer(t *testing.T, statusSequence []string) (*httptest.Server, *int32) {
	t.Helper()
	var statusCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/17841400000000000/media", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "https://img.example/status.png", r.Form.Get("image_url"))
		assert.NotEmpty(t, r.Form.Get("caption"))
		json.NewEncoder(w).Encode(map[string]string{"id": "container-1"})
	})
	mux.HandleFunc("/container-1", func(w http.ResponseWriter, r *http.Request) {
		idx := atomic.AddInt32(&statusCalls, 1) - 1
		status := statusSequence[len(statusSequence)-1]
		if int(idx) < len(statusSequence) {
			status = statusSequence[idx]
		}
		json.NewEncoder(w).Encode(map[string]string{"status_code": status})
	})
	mux.HandleFunc("/17841400000000000/media_publish", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "container-1", r.Form.Get("creation_id"))
		json.NewEncoder(w).Encode(map[string]string{"id": "post-42"})
	})

	return httptest.NewServer(mux), &statusCalls
}

func TestPublishLatest_FullWorkflow(t *testing.T) {
	es := datastore.NewEventStore(t.TempDir(), zerolog.Nop())
	ev := pendingEvent(t, es)

	server, _ := newGraphServer(t, []string{"IN_PROGRESS", "FINISHED"})
	defer server.Close()

	in := NewInstagramNotifier(testNotificationConfig(server.URL), es, zerolog.Nop())
	require.NoError(t, in.PublishLatest(context.Background()))

	updated, found := es.Read(ev.Key)
	require.True(t, found)
	assert.True(t, updated.InstagramPosted)
	assert.Equal(t, "post-42", updated.InstagramPostID)
	assert.NotEmpty(t, updated.Caption)
}

func TestPublishLatest_ContainerError(t *testing.T) {
	es := datastore.NewEventStore(t.TempDir(), zerolog.Nop())
	ev := pendingEvent(t, es)

	server, _ := newGraphServer(t, []string{"ERROR"})
	defer server.Close()

	in := NewInstagramNotifier(testNotificationConfig(server.URL), es, zerolog.Nop())
	err := in.PublishLatest(context.Background())
	require.Error(t, err)

	// A failed publish leaves the event untouched for retry.
	unchanged, found := es.Read(ev.Key)
	require.True(t, found)
	assert.False(t, unchanged.InstagramPosted)
	assert.Empty(t, unchanged.InstagramPostID)
}

func TestPublishLatest_ProcessingTimeout(t *testing.T) {
	es := datastore.NewEventStore(t.TempDir(), zerolog.Nop())
	ev := pendingEvent(t, es)

	server, _ := newGraphServer(t, []string{"IN_PROGRESS"})
	defer server.Close()

	in := NewInstagramNotifier(testNotificationConfig(server.URL), es, zerolog.Nop())
	err := in.PublishLatest(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errorutil.ErrTimeout))

	unchanged, found := es.Read(ev.Key)
	require.True(t, found)
	assert.False(t, unchanged.InstagramPosted)
}

func TestPublishLatest_NoCredentials(t *testing.T) {
	es := datastore.NewEventStore(t.TempDir(), zerolog.Nop())
	pendingEvent(t, es)

	in := NewInstagramNotifier(config.NewDefaultNotificationConfig(), es, zerolog.Nop())
	assert.NoError(t, in.PublishLatest(context.Background()))
}

func TestPublishLatest_NoPendingEvent(t *testing.T) {
	es := datastore.NewEventStore(t.TempDir(), zerolog.Nop())

	in := NewInstagramNotifier(testNotificationConfig("http://unused.example"), es, zerolog.Nop())
	assert.NoError(t, in.PublishLatest(context.Background()))
}

func TestPublishLatest_EventWithoutScreenshot(t *testing.T) {
	es := datastore.NewEventStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, es.Write(models.ChangeEvent{ID: "ev", Key: "k"}))

	in := NewInstagramNotifier(testNotificationConfig("http://unused.example"), es, zerolog.Nop())
	assert.NoError(t, in.PublishLatest(context.Background()))
}

func TestBuildCaption(t *testing.T) {
	ev := models.ChangeEvent{
		Summary: models.EventSummary{LiftsOpened: 2, TrailsOpened: 1},
		Detail: models.EventDetail{
			LiftsOpened:  []string{"B", "C"},
			TrailsOpened: []string{"Cruiser"},
		},
	}

	caption := buildCaption(ev)

	assert.True(t, strings.HasPrefix(caption, "Mountain status update"))
	assert.Contains(t, caption, "2 lifts opened (B, C)")
	assert.Contains(t, caption, "1 trail opened (Cruiser)")
}
