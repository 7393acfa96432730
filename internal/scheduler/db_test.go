package scheduler

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_RecordAndRead(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	j, err := NewJournal(dbPath, zerolog.Nop())
	require.NoError(t, err)
	defer j.Close()

	decidedAt := time.Date(2025, 1, 15, 17, 0, 0, 0, time.UTC)
	j.Record(JournalEntry{
		DecidedAt:       decidedAt,
		Allowed:         true,
		Reason:          ReasonDue,
		IntervalMinutes: 10,
		ElapsedMinutes:  12.5,
		Outcome:         OutcomePolled,
	})
	j.Record(JournalEntry{
		DecidedAt: decidedAt.Add(5 * time.Minute),
		Allowed:   false,
		Reason:    ReasonThrottled,
		Outcome:   OutcomeSkipped,
	})

	entries, err := j.RecentEntries(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, OutcomeSkipped, entries[0].Outcome)
	assert.False(t, entries[0].Allowed)
	assert.Equal(t, OutcomePolled, entries[1].Outcome)
	assert.True(t, entries[1].Allowed)
	assert.Equal(t, 10, entries[1].IntervalMinutes)
	assert.InDelta(t, 12.5, entries[1].ElapsedMinutes, 0.001)
	assert.True(t, entries[1].DecidedAt.Equal(decidedAt))
}

func TestJournal_ReopenKeepsEntries(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	j, err := NewJournal(dbPath, zerolog.Nop())
	require.NoError(t, err)
	j.Record(JournalEntry{DecidedAt: time.Now(), Allowed: true, Reason: ReasonFirstPoll, Outcome: OutcomePolled})
	require.NoError(t, j.Close())

	reopened, err := NewJournal(dbPath, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.RecentEntries(10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
