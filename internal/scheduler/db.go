package scheduler

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/powderlines/liftwatch/internal/errorutil"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Journal records every gate decision and poll outcome in sqlite for later
// inspection. It is observational only: the gate itself reads its last-poll
// input from the current-status file, never from here.
type Journal struct {
	db     *sql.DB
	logger zerolog.Logger
}

// JournalEntry is one recorded invocation.
type JournalEntry struct {
	DecidedAt       time.Time
	Allowed         bool
	Reason          string
	IntervalMinutes int
	ElapsedMinutes  float64
	Outcome         string
}

// Poll outcomes recorded in the journal.
const (
	OutcomeSkipped     = "skipped"
	OutcomePolled      = "polled"
	OutcomeFetchFailed = "fetch_failed"
	OutcomeEventFired  = "event_fired"
)

// NewJournal opens (creating if needed) the sqlite journal at dbPath.
func NewJournal(dbPath string, logger zerolog.Logger) (*Journal, error) {
	journalLogger := logger.With().Str("component", "PollJournal").Logger()

	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, errorutil.WrapErrorf(err, "failed to create journal directory '%s'", dbDir)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errorutil.WrapErrorf(err, "failed to open journal database '%s'", dbPath)
	}

	j := &Journal{db: db, logger: journalLogger}
	if err := j.initSchema(); err != nil {
		j.Close()
		return nil, errorutil.WrapError(err, "failed to initialize journal schema")
	}
	journalLogger.Debug().Str("path", dbPath).Msg("Poll journal ready")
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

func (j *Journal) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS poll_journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		decided_at DATETIME NOT NULL,
		allowed INTEGER NOT NULL,
		reason TEXT NOT NULL,
		interval_minutes INTEGER,
		elapsed_minutes REAL,
		outcome TEXT NOT NULL
	);
	`
	_, err := j.db.Exec(query)
	return err
}

// Record appends one entry. Journal failures are logged and swallowed; the
// journal must never fail a poll.
func (j *Journal) Record(entry JournalEntry) {
	_, err := j.db.Exec(
		`INSERT INTO poll_journal (decided_at, allowed, reason, interval_minutes, elapsed_minutes, outcome)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.DecidedAt.UTC().Format(time.RFC3339),
		boolToInt(entry.Allowed),
		entry.Reason,
		entry.IntervalMinutes,
		entry.ElapsedMinutes,
		entry.Outcome,
	)
	if err != nil {
		j.logger.Warn().Err(err).Msg("Failed to record journal entry")
	}
}

// RecentEntries returns the most recent entries, newest first.
func (j *Journal) RecentEntries(limit int) ([]JournalEntry, error) {
	rows, err := j.db.Query(
		`SELECT decided_at, allowed, reason, interval_minutes, elapsed_minutes, outcome
		 FROM poll_journal ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errorutil.WrapError(err, "failed to query journal")
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var (
			entry     JournalEntry
			decidedAt string
			allowed   int
		)
		if err := rows.Scan(&decidedAt, &allowed, &entry.Reason, &entry.IntervalMinutes, &entry.ElapsedMinutes, &entry.Outcome); err != nil {
			return nil, errorutil.WrapError(err, "failed to scan journal row")
		}
		entry.Allowed = allowed != 0
		if t, err := time.Parse(time.RFC3339, decidedAt); err == nil {
			entry.DecidedAt = t
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
