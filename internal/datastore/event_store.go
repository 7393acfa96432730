package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/powderlines/liftwatch/internal/errorutil"
	"github.com/powderlines/liftwatch/internal/models"
	"github.com/rs/zerolog"
)

// EventStore persists change-event records, one JSON file per comparison
// window, named by the event's dedup key.
type EventStore struct {
	dir    string
	logger zerolog.Logger
}

// NewEventStore creates an event store rooted at dir.
func NewEventStore(dir string, logger zerolog.Logger) *EventStore {
	return &EventStore{
		dir:    dir,
		logger: logger.With().Str("component", "EventStore").Logger(),
	}
}

func (es *EventStore) pathForKey(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case ':', '/', '\\', ' ':
			return '_'
		}
		return r
	}, key)
	return filepath.Join(es.dir, "event_"+safe+".json")
}

// Read loads the event record for a dedup key. Returns false when no record
// exists for that key.
func (es *EventStore) Read(key string) (models.ChangeEvent, bool) {
	data, err := os.ReadFile(es.pathForKey(key))
	if err != nil {
		return models.ChangeEvent{}, false
	}
	var ev models.ChangeEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		es.logger.Warn().Err(err).Str("key", key).Msg("Event record is corrupt")
		return models.ChangeEvent{}, false
	}
	return ev, true
}

// Write persists an event record atomically, keyed by its dedup key.
func (es *EventStore) Write(ev models.ChangeEvent) error {
	if err := os.MkdirAll(es.dir, 0755); err != nil {
		return errorutil.WrapErrorf(err, "failed to create event directory '%s'", es.dir)
	}

	data, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		return errorutil.WrapError(err, "failed to marshal event record")
	}

	path := es.pathForKey(ev.Key)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return errorutil.WrapErrorf(err, "failed to write event record to '%s'", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errorutil.WrapErrorf(err, "failed to replace event record at '%s'", path)
	}
	return nil
}

// LatestUnpublished returns the newest event record (by created_at, falling
// back to file name) that has not been posted yet. Returns false when every
// record is published or none exist.
func (es *EventStore) LatestUnpublished() (models.ChangeEvent, bool) {
	entries, err := os.ReadDir(es.dir)
	if err != nil {
		return models.ChangeEvent{}, false
	}

	var candidates []models.ChangeEvent
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "event_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(es.dir, name))
		if err != nil {
			continue
		}
		var ev models.ChangeEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			es.logger.Warn().Err(err).Str("file", name).Msg("Skipping corrupt event record")
			continue
		}
		if !ev.InstagramPosted {
			candidates = append(candidates, ev)
		}
	}

	if len(candidates) == 0 {
		return models.ChangeEvent{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt > candidates[j].CreatedAt
	})
	return candidates[0], true
}
