package config

// Feed defaults
const (
	DefaultFeedURL           = "https://status.powderlines.example/api/v1/status"
	DefaultFeedTimeoutSecs   = 20
	DefaultFeedRetryAttempts = 2
)

// Storage defaults
const (
	DefaultHistoryPath       = "data/history.json"
	DefaultCurrentStatusPath = "data/current_status.json"
	DefaultEventDir          = "data/events"
	DefaultArchivePath       = "data/archive/snapshots.parquet"
	DefaultRetentionHours    = 48
)

// Schedule defaults
const (
	DefaultTimezone               = "America/Denver"
	DefaultWindowStart            = "05:00"
	DefaultWindowEnd              = "23:00"
	DefaultRollingStart           = "08:00"
	DefaultRollingEnd             = "10:00"
	DefaultRollingIntervalMinutes = 5
	DefaultBaseIntervalMinutes    = 10
	DefaultJournalDBPath          = "data/poll_journal.db"
)

// Detector defaults
const (
	DefaultMorningTargetHour         = 10
	DefaultAfternoonTargetHour       = 15
	DefaultMorningToleranceMinutes   = 90
	DefaultAfternoonToleranceMinutes = 90
	DefaultOpenedThreshold           = 3
	DefaultClosedThreshold           = 3
)

// Notification defaults
const (
	DefaultGraphAPIBaseURL         = "https://graph.facebook.com/v19.0"
	DefaultPublishTimeoutSecs      = 120
	DefaultPublishPollIntervalSecs = 5
)

// Log defaults
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)

// DefaultSeasonMonths is November through May.
func DefaultSeasonMonths() []int {
	return []int{11, 12, 1, 2, 3, 4, 5}
}
