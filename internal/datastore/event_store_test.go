package datastore

import (
	"testing"

	"github.com/powderlines/liftwatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventStore_WriteAndRead(t *testing.T) {
	es := NewEventStore(t.TempDir(), zerolog.Nop())

	ev := models.ChangeEvent{
		ID:        "id-1",
		Key:       "2025-01-15@1000-vs-2025-01-14@1500",
		CreatedAt: "2025-01-15T17:05:00Z",
		Summary:   models.EventSummary{OpenedTotal: 3},
	}
	require.NoError(t, es.Write(ev))

	got, found := es.Read(ev.Key)
	require.True(t, found)
	assert.Equal(t, ev.ID, got.ID)
	assert.Equal(t, 3, got.Summary.OpenedTotal)
}

func TestEventStore_ReadMissing(t *testing.T) {
	es := NewEventStore(t.TempDir(), zerolog.Nop())

	_, found := es.Read("no-such-key")
	assert.False(t, found)
}

func TestEventStore_RewritePreservesNothingImplicitly(t *testing.T) {
	// Write replaces the record wholesale; preserving the publisher fields
	// is the writer's job, so a rewrite carrying them must round-trip.
	es := NewEventStore(t.TempDir(), zerolog.Nop())

	ev := models.ChangeEvent{
		ID:              "id-1",
		Key:             "k",
		InstagramPosted: true,
		InstagramPostID: "post-9",
		ScreenshotPath:  "https://img.example/shot.png",
		Caption:         "custom caption",
	}
	require.NoError(t, es.Write(ev))

	got, found := es.Read("k")
	require.True(t, found)
	assert.True(t, got.InstagramPosted)
	assert.Equal(t, "post-9", got.InstagramPostID)
	assert.Equal(t, "https://img.example/shot.png", got.ScreenshotPath)
	assert.Equal(t, "custom caption", got.Caption)
}

func TestEventStore_LatestUnpublished(t *testing.T) {
	es := NewEventStore(t.TempDir(), zerolog.Nop())

	require.NoError(t, es.Write(models.ChangeEvent{
		ID: "old", Key: "k-old", CreatedAt: "2025-01-13T17:00:00Z",
	}))
	require.NoError(t, es.Write(models.ChangeEvent{
		ID: "published", Key: "k-pub", CreatedAt: "2025-01-14T17:00:00Z", InstagramPosted: true,
	}))
	require.NoError(t, es.Write(models.ChangeEvent{
		ID: "newest", Key: "k-new", CreatedAt: "2025-01-15T17:00:00Z",
	}))

	got, found := es.LatestUnpublished()
	require.True(t, found)
	assert.Equal(t, "newest", got.ID)
}

func TestEventStore_LatestUnpublished_AllPublished(t *testing.T) {
	es := NewEventStore(t.TempDir(), zerolog.Nop())

	require.NoError(t, es.Write(models.ChangeEvent{
		ID: "done", Key: "k", InstagramPosted: true,
	}))

	_, found := es.LatestUnpublished()
	assert.False(t, found)
}

func TestEventStore_LatestUnpublished_EmptyDir(t *testing.T) {
	es := NewEventStore(t.TempDir(), zerolog.Nop())

	_, found := es.LatestUnpublished()
	assert.False(t, found)
}
