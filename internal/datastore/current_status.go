package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/powderlines/liftwatch/internal/errorutil"
	"github.com/powderlines/liftwatch/internal/models"
)

// ReadCurrentStatus loads the most recently written current-status record.
// Returns false when the file is missing or unreadable; that is the normal
// first-run state, not an error.
func ReadCurrentStatus(path string) (models.CurrentStatus, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.CurrentStatus{}, false
	}
	var cs models.CurrentStatus
	if err := json.Unmarshal(data, &cs); err != nil {
		return models.CurrentStatus{}, false
	}
	return cs, true
}

// LastFetchTime reads the prior poll's fetch instant from the
// current-status file. Returns false when the file is absent or its
// fetched_at field is missing or malformed.
func LastFetchTime(path string) (time.Time, bool) {
	cs, ok := ReadCurrentStatus(path)
	if !ok || cs.FetchedAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(models.TimestampLayout, cs.FetchedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// WriteCurrentStatus persists the current-status record atomically.
func WriteCurrentStatus(path string, cs models.CurrentStatus) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errorutil.WrapErrorf(err, "failed to create directory for '%s'", path)
	}

	data, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return errorutil.WrapError(err, "failed to marshal current status")
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return errorutil.WrapErrorf(err, "failed to write current status to '%s'", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errorutil.WrapErrorf(err, "failed to replace current status at '%s'", path)
	}
	return nil
}
