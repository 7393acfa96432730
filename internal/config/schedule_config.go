package config

// ScheduleConfig defines when polls are allowed to run. All clock strings
// are HH:MM wall-clock readings in Timezone.
type ScheduleConfig struct {
	Timezone     string `json:"timezone,omitempty" yaml:"timezone,omitempty" validate:"required,timezone_name"`
	SeasonMonths []int  `json:"season_months,omitempty" yaml:"season_months,omitempty" validate:"required,min=1,dive,min=1,max=12"`
	WindowStart  string `json:"window_start,omitempty" yaml:"window_start,omitempty" validate:"required,clock"`
	WindowEnd    string `json:"window_end,omitempty" yaml:"window_end,omitempty" validate:"required,clock"`
	// RollingStart..RollingEnd is the morning sub-window during which lifts
	// open in quick succession and the poll cadence tightens.
	RollingStart           string `json:"rolling_start,omitempty" yaml:"rolling_start,omitempty" validate:"required,clock"`
	RollingEnd             string `json:"rolling_end,omitempty" yaml:"rolling_end,omitempty" validate:"required,clock"`
	RollingIntervalMinutes int    `json:"rolling_interval_minutes,omitempty" yaml:"rolling_interval_minutes,omitempty" validate:"min=1"`
	BaseIntervalMinutes    int    `json:"base_interval_minutes,omitempty" yaml:"base_interval_minutes,omitempty" validate:"min=1"`
	// JournalDBPath is the sqlite journal of gate decisions. Empty disables
	// journaling.
	JournalDBPath string `json:"journal_db_path,omitempty" yaml:"journal_db_path,omitempty"`
}

// NewDefaultScheduleConfig creates default schedule configuration.
func NewDefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		Timezone:               DefaultTimezone,
		SeasonMonths:           DefaultSeasonMonths(),
		WindowStart:            DefaultWindowStart,
		WindowEnd:              DefaultWindowEnd,
		RollingStart:           DefaultRollingStart,
		RollingEnd:             DefaultRollingEnd,
		RollingIntervalMinutes: DefaultRollingIntervalMinutes,
		BaseIntervalMinutes:    DefaultBaseIntervalMinutes,
		JournalDBPath:          DefaultJournalDBPath,
	}
}
