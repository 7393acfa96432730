package models

// ArchivedSnapshot is the parquet row format for snapshots evicted from the
// rolling history log. Status maps are stored as JSON strings: the archive
// is a cold audit trail, not a query surface.
type ArchivedSnapshot struct {
	CapturedAt string `parquet:"captured_at,zstd"`
	Lifts      string `parquet:"lifts,zstd"`
	Trails     string `parquet:"trails,zstd"`
	Operations string `parquet:"operations,zstd,optional"`
}
