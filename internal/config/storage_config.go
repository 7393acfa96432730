package config

// StorageConfig defines where the persisted records live and how long
// snapshots are retained in the rolling history log.
type StorageConfig struct {
	HistoryPath       string `json:"history_path,omitempty" yaml:"history_path,omitempty" validate:"required"`
	CurrentStatusPath string `json:"current_status_path,omitempty" yaml:"current_status_path,omitempty" validate:"required"`
	EventDir          string `json:"event_dir,omitempty" yaml:"event_dir,omitempty" validate:"required"`
	// ArchivePath is the parquet file receiving snapshots evicted by the
	// retention prune. Empty disables archiving.
	ArchivePath    string `json:"archive_path,omitempty" yaml:"archive_path,omitempty"`
	RetentionHours int    `json:"retention_hours,omitempty" yaml:"retention_hours,omitempty" validate:"min=1"`
}

// NewDefaultStorageConfig creates default storage configuration.
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		HistoryPath:       DefaultHistoryPath,
		CurrentStatusPath: DefaultCurrentStatusPath,
		EventDir:          DefaultEventDir,
		ArchivePath:       DefaultArchivePath,
		RetentionHours:    DefaultRetentionHours,
	}
}
