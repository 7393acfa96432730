package config

// DetectorConfig defines the day-over-day comparison the event controller
// performs: today's status near the morning target against yesterday's
// status near the afternoon target.
type DetectorConfig struct {
	MorningTargetHour         int `json:"morning_target_hour,omitempty" yaml:"morning_target_hour,omitempty" validate:"min=0,max=23"`
	AfternoonTargetHour       int `json:"afternoon_target_hour,omitempty" yaml:"afternoon_target_hour,omitempty" validate:"min=0,max=23"`
	MorningToleranceMinutes   int `json:"morning_tolerance_minutes,omitempty" yaml:"morning_tolerance_minutes,omitempty" validate:"min=1"`
	AfternoonToleranceMinutes int `json:"afternoon_tolerance_minutes,omitempty" yaml:"afternoon_tolerance_minutes,omitempty" validate:"min=1"`
	OpenedThreshold           int `json:"opened_threshold,omitempty" yaml:"opened_threshold,omitempty" validate:"min=1"`
	ClosedThreshold           int `json:"closed_threshold,omitempty" yaml:"closed_threshold,omitempty" validate:"min=1"`
}

// NewDefaultDetectorConfig creates default detector configuration.
func NewDefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		MorningTargetHour:         DefaultMorningTargetHour,
		AfternoonTargetHour:       DefaultAfternoonTargetHour,
		MorningToleranceMinutes:   DefaultMorningToleranceMinutes,
		AfternoonToleranceMinutes: DefaultAfternoonToleranceMinutes,
		OpenedThreshold:           DefaultOpenedThreshold,
		ClosedThreshold:           DefaultClosedThreshold,
	}
}
