package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/powderlines/liftwatch/internal/errorutil"
	"github.com/powderlines/liftwatch/internal/models"
	"github.com/rs/zerolog"
)

// Archive is the long-term parquet store for snapshots evicted from the
// rolling history log. Appending rewrites the file through a temp path; the
// archive stays small enough (a few rows per day) that read-merge-write is
// not a concern.
type Archive struct {
	path   string
	logger zerolog.Logger
}

// NewArchive creates an archive at path. An empty path disables archiving;
// AppendSnapshots becomes a no-op.
func NewArchive(path string, logger zerolog.Logger) *Archive {
	return &Archive{
		path:   path,
		logger: logger.With().Str("component", "Archive").Logger(),
	}
}

// AppendSnapshots adds evicted snapshots to the archive. Records whose
// timestamps were malformed are archived as-is; the archive is an audit
// trail, not a validated store.
func (a *Archive) AppendSnapshots(snaps []models.Snapshot) error {
	if a.path == "" || len(snaps) == 0 {
		return nil
	}

	existing, err := a.readAll()
	if err != nil {
		return err
	}

	rows := existing
	for _, snap := range snaps {
		row, err := toArchivedSnapshot(snap)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	return a.writeAll(rows)
}

func (a *Archive) readAll() ([]models.ArchivedSnapshot, error) {
	if _, err := os.Stat(a.path); os.IsNotExist(err) {
		return nil, nil
	}
	rows, err := parquet.ReadFile[models.ArchivedSnapshot](a.path)
	if err != nil {
		// A corrupt archive should not block the poll pipeline; start over
		// and keep the new rows.
		a.logger.Warn().Err(err).Str("path", a.path).Msg("Archive unreadable, rewriting from scratch")
		return nil, nil
	}
	return rows, nil
}

func (a *Archive) writeAll(rows []models.ArchivedSnapshot) error {
	if err := os.MkdirAll(filepath.Dir(a.path), 0755); err != nil {
		return errorutil.WrapErrorf(err, "failed to create archive directory for '%s'", a.path)
	}

	tmpPath := a.path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return errorutil.WrapErrorf(err, "failed to create archive temp file '%s'", tmpPath)
	}

	writer := parquet.NewGenericWriter[models.ArchivedSnapshot](file, parquet.Compression(&parquet.Zstd))
	if _, err := writer.Write(rows); err != nil {
		file.Close()
		return errorutil.WrapError(err, "failed to write archive rows")
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return errorutil.WrapError(err, "failed to finalize archive file")
	}
	if err := file.Close(); err != nil {
		return errorutil.WrapErrorf(err, "failed to close archive file '%s'", tmpPath)
	}

	if err := os.Rename(tmpPath, a.path); err != nil {
		return errorutil.WrapErrorf(err, "failed to replace archive at '%s'", a.path)
	}

	a.logger.Debug().Int("rows", len(rows)).Str("path", a.path).Msg("Archive rewritten")
	return nil
}

func toArchivedSnapshot(snap models.Snapshot) (models.ArchivedSnapshot, error) {
	lifts, err := json.Marshal(snap.Lifts)
	if err != nil {
		return models.ArchivedSnapshot{}, errorutil.WrapError(err, "failed to encode lifts for archive")
	}
	trails, err := json.Marshal(snap.Trails)
	if err != nil {
		return models.ArchivedSnapshot{}, errorutil.WrapError(err, "failed to encode trails for archive")
	}

	row := models.ArchivedSnapshot{
		CapturedAt: snap.CapturedAt,
		Lifts:      string(lifts),
		Trails:     string(trails),
	}
	if len(snap.Operations) > 0 {
		ops, err := json.Marshal(snap.Operations)
		if err != nil {
			return models.ArchivedSnapshot{}, errorutil.WrapError(err, "failed to encode operations for archive")
		}
		row.Operations = string(ops)
	}
	return row, nil
}
