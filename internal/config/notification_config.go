package config

// NotificationConfig defines the Instagram publishing integration.
// Publishing is disabled entirely when AccessToken is empty.
type NotificationConfig struct {
	AccessToken       string `json:"access_token,omitempty" yaml:"access_token,omitempty"`
	BusinessAccountID string `json:"business_account_id,omitempty" yaml:"business_account_id,omitempty"`
	GraphAPIBaseURL   string `json:"graph_api_base_url,omitempty" yaml:"graph_api_base_url,omitempty" validate:"omitempty,url"`
	// PublishTimeoutSecs is the hard wall-clock ceiling on waiting for a
	// media container to finish processing.
	PublishTimeoutSecs int `json:"publish_timeout_secs,omitempty" yaml:"publish_timeout_secs,omitempty" validate:"min=1"`
	PollIntervalSecs   int `json:"poll_interval_secs,omitempty" yaml:"poll_interval_secs,omitempty" validate:"min=1"`
}

// NewDefaultNotificationConfig creates default notification configuration.
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		GraphAPIBaseURL:    DefaultGraphAPIBaseURL,
		PublishTimeoutSecs: DefaultPublishTimeoutSecs,
		PollIntervalSecs:   DefaultPublishPollIntervalSecs,
	}
}
