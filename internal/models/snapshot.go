package models

import "time"

// TimestampLayout is the wire format for every persisted instant.
const TimestampLayout = time.RFC3339

// Snapshot is an immutable point-in-time observation of the resort status.
// CapturedAt is kept as its persisted string form so that a snapshot with a
// malformed timestamp stays representable; consumers that need the instant
// go through CapturedTime and treat a parse failure as an expired record.
type Snapshot struct {
	CapturedAt string                 `json:"captured_at"`
	Lifts      StatusMap              `json:"lifts"`
	Trails     StatusMap              `json:"trails"`
	Operations map[string]interface{} `json:"operations,omitempty"`
}

// NewSnapshot creates a snapshot captured at the given instant.
func NewSnapshot(capturedAt time.Time, lifts, trails StatusMap) Snapshot {
	if lifts == nil {
		lifts = StatusMap{}
	}
	if trails == nil {
		trails = StatusMap{}
	}
	return Snapshot{
		CapturedAt: capturedAt.Format(TimestampLayout),
		Lifts:      lifts,
		Trails:     trails,
	}
}

// CapturedTime parses the snapshot's capture instant.
func (s Snapshot) CapturedTime() (time.Time, error) {
	return time.Parse(TimestampLayout, s.CapturedAt)
}

// HistoryMeta carries the event de-duplication bookkeeping for a history log.
type HistoryMeta struct {
	LastEventKey       string `json:"last_event_key,omitempty"`
	LastEventCreatedAt string `json:"last_event_created_at,omitempty"`
}

// HistoryLog is the sole persisted state carried between invocations: an
// ordered sequence of snapshots plus the dedup metadata.
type HistoryLog struct {
	TZ        string      `json:"tz"`
	Snapshots []Snapshot  `json:"snapshots"`
	Meta      HistoryMeta `json:"meta"`
}
