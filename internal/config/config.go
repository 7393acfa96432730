package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/powderlines/liftwatch/internal/errorutil"
	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the application.
type GlobalConfig struct {
	FeedConfig         FeedConfig         `json:"feed_config,omitempty" yaml:"feed_config,omitempty"`
	StorageConfig      StorageConfig      `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	ScheduleConfig     ScheduleConfig     `json:"schedule_config,omitempty" yaml:"schedule_config,omitempty"`
	DetectorConfig     DetectorConfig     `json:"detector_config,omitempty" yaml:"detector_config,omitempty"`
	NotificationConfig NotificationConfig `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	LogConfig          LogConfig          `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		FeedConfig:         NewDefaultFeedConfig(),
		StorageConfig:      NewDefaultStorageConfig(),
		ScheduleConfig:     NewDefaultScheduleConfig(),
		DetectorConfig:     NewDefaultDetectorConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
		LogConfig:          NewDefaultLogConfig(),
	}
}

// LoadGlobalConfig loads configuration from a file or default locations,
// overlaying the file's values on the defaults. A missing path (no config
// file anywhere) yields the defaults. Supports both YAML and JSON; YAML is
// chosen by file extension.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errorutil.WrapErrorf(err, "failed to read config file '%s'", filePath)
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, errorutil.WrapError(err, "failed to parse config content")
	}

	return cfg, nil
}

func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".json":
		return json.Unmarshal(data, cfg)
	default:
		// Try YAML first, it is a superset of what we emit in examples.
		if err := yaml.Unmarshal(data, cfg); err == nil {
			return nil
		}
		return json.Unmarshal(data, cfg)
	}
}
