package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/powderlines/liftwatch/internal/config"
	"github.com/powderlines/liftwatch/internal/errorutil"
	"gopkg.in/natefinch/lumberjack.v2"
)

// fileWriter returns a size-rotated file writer for the configured log file.
func fileWriter(cfg config.LogConfig) (io.Writer, error) {
	dir := filepath.Dir(cfg.LogFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errorutil.WrapErrorf(err, "failed to create log directory '%s'", dir)
	}

	maxSize := cfg.MaxLogSizeMB
	if maxSize <= 0 {
		maxSize = config.DefaultMaxLogSizeMB
	}
	maxBackups := cfg.MaxLogBackups
	if maxBackups < 0 {
		maxBackups = config.DefaultMaxLogBackups
	}

	return &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   true,
	}, nil
}
