package config

// FeedConfig defines configuration for the upstream status feed fetch.
type FeedConfig struct {
	URL           string `json:"url,omitempty" yaml:"url,omitempty" validate:"required,url"`
	TimeoutSecs   int    `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=1"`
	RetryAttempts int    `json:"retry_attempts,omitempty" yaml:"retry_attempts,omitempty" validate:"min=0"`
}

// NewDefaultFeedConfig creates default feed configuration.
func NewDefaultFeedConfig() FeedConfig {
	return FeedConfig{
		URL:           DefaultFeedURL,
		TimeoutSecs:   DefaultFeedTimeoutSecs,
		RetryAttempts: DefaultFeedRetryAttempts,
	}
}
