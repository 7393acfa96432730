package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/powderlines/liftwatch/internal/config"
	"github.com/powderlines/liftwatch/internal/errorutil"
	"github.com/powderlines/liftwatch/internal/models"
	"github.com/rs/zerolog"
)

// HistoryStore owns the rolling history log: an append-only, time-pruned
// sequence of snapshots persisted as a single JSON file.
type HistoryStore struct {
	path      string
	retention time.Duration
	tz        string
	logger    zerolog.Logger
	log       models.HistoryLog
}

// NewHistoryStore creates a history store for the configured path. Call
// Load before use.
func NewHistoryStore(cfg config.StorageConfig, tz string, logger zerolog.Logger) *HistoryStore {
	return &HistoryStore{
		path:      cfg.HistoryPath,
		retention: time.Duration(cfg.RetentionHours) * time.Hour,
		tz:        tz,
		logger:    logger.With().Str("component", "HistoryStore").Logger(),
	}
}

// Load reads the persisted history log. A missing or corrupt file yields an
// empty log with no metadata rather than an error.
func (hs *HistoryStore) Load() {
	hs.log = models.HistoryLog{TZ: hs.tz, Snapshots: []models.Snapshot{}}

	data, err := os.ReadFile(hs.path)
	if err != nil {
		if !os.IsNotExist(err) {
			hs.logger.Warn().Err(err).Str("path", hs.path).Msg("Could not read history log, starting empty")
		}
		return
	}

	var loaded models.HistoryLog
	if err := json.Unmarshal(data, &loaded); err != nil {
		hs.logger.Warn().Err(err).Str("path", hs.path).Msg("History log is corrupt, starting empty")
		return
	}
	if loaded.Snapshots == nil {
		loaded.Snapshots = []models.Snapshot{}
	}
	if loaded.TZ == "" {
		loaded.TZ = hs.tz
	}
	hs.log = loaded
}

// Append adds a snapshot to the end of the log.
func (hs *HistoryStore) Append(snap models.Snapshot) {
	hs.log.Snapshots = append(hs.log.Snapshots, snap)
}

// Prune removes every snapshot older than the retention window relative to
// now and returns the evicted records. Snapshots with unparseable
// timestamps are treated as already expired and evicted as well. Pruning an
// already-pruned log is a no-op.
func (hs *HistoryStore) Prune(now time.Time) []models.Snapshot {
	cutoff := now.Add(-hs.retention)
	kept := hs.log.Snapshots[:0:0]
	var evicted []models.Snapshot

	for _, snap := range hs.log.Snapshots {
		capturedAt, err := snap.CapturedTime()
		if err != nil {
			hs.logger.Debug().Str("captured_at", snap.CapturedAt).Msg("Dropping snapshot with malformed timestamp")
			evicted = append(evicted, snap)
			continue
		}
		if capturedAt.Before(cutoff) {
			evicted = append(evicted, snap)
			continue
		}
		kept = append(kept, snap)
	}

	hs.log.Snapshots = kept
	return evicted
}

// FindNearest scans the retained snapshots and returns the one whose
// capture instant is closest to target. Returns false when the log is
// empty, no snapshot has a parseable timestamp, or the best candidate is
// farther than tolerance. Ties keep the first minimum encountered.
func (hs *HistoryStore) FindNearest(target time.Time, tolerance time.Duration) (models.Snapshot, bool) {
	var (
		best     models.Snapshot
		bestDist time.Duration
		found    bool
	)

	for _, snap := range hs.log.Snapshots {
		capturedAt, err := snap.CapturedTime()
		if err != nil {
			continue
		}
		dist := capturedAt.Sub(target)
		if dist < 0 {
			dist = -dist
		}
		if !found || dist < bestDist {
			best = snap
			bestDist = dist
			found = true
		}
	}

	if !found || bestDist > tolerance {
		return models.Snapshot{}, false
	}
	return best, true
}

// Meta returns the log's event bookkeeping metadata.
func (hs *HistoryStore) Meta() models.HistoryMeta {
	return hs.log.Meta
}

// SetMeta replaces the log's event bookkeeping metadata.
func (hs *HistoryStore) SetMeta(meta models.HistoryMeta) {
	hs.log.Meta = meta
}

// Snapshots returns the retained snapshots in append order.
func (hs *HistoryStore) Snapshots() []models.Snapshot {
	return hs.log.Snapshots
}

// Save persists the entire log. The write goes through a temp file and a
// rename so a crash cannot leave a half-written log behind.
func (hs *HistoryStore) Save() error {
	if err := os.MkdirAll(filepath.Dir(hs.path), 0755); err != nil {
		return errorutil.WrapErrorf(err, "failed to create history directory for '%s'", hs.path)
	}

	data, err := json.MarshalIndent(hs.log, "", "  ")
	if err != nil {
		return errorutil.WrapError(err, "failed to marshal history log")
	}

	tmpPath := hs.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return errorutil.WrapErrorf(err, "failed to write history log to '%s'", tmpPath)
	}
	if err := os.Rename(tmpPath, hs.path); err != nil {
		return errorutil.WrapErrorf(err, "failed to replace history log at '%s'", hs.path)
	}
	return nil
}
