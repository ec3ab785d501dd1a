package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"pccopy/internal/shares"
)

// getLogFilePath determines the location of the log file.
// It uses ~/.cache/pccopy/pccopy.log and falls back to /tmp/pccopy.log if the
// cache directory cannot be created. Under sudo the invoking user's home is used.
func getLogFilePath() string {
	fallback := filepath.Join(os.TempDir(), AppID+".log")

	var homeDir string
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
		homeDir = "/home/" + sudoUser
	} else {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return fallback
		}
	}

	logDir := filepath.Join(homeDir, ".cache", AppID)
	if err := os.MkdirAll(logDir, 0o755); err == nil {
		return filepath.Join(logDir, AppID+".log")
	}
	return fallback
}

// LogFilePath returns the configured log path, or the default location.
func LogFilePath(cfg LogConfig) string {
	if cfg.Path != "" {
		return cfg.Path
	}
	return getLogFilePath()
}

// NewLogger creates a [log.Logger] writing to w with timestamps enabled.
// The writer defaults to [os.Stderr].
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: true, Prefix: AppID})
	if level == "" {
		return logger, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return logger, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// OpenLogFile opens the log file for appending.
func OpenLogFile(cfg LogConfig) (*os.File, string, error) {
	path := LogFilePath(cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, path, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, path, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, path, nil
}

// FormatNumber adds commas to large numbers for readability.
//
// Examples:
//
//	FormatNumber(1234) -> "1,234"
//	FormatNumber(999) -> "999"
func FormatNumber(n int64) string {
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}

	str := strconv.FormatInt(n, 10)
	var result strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(char)
	}
	return result.String()
}

// FormatBytes formats byte counts into human-readable size.
func FormatBytes(bytes int64) string {
	return shares.FormatBytes(bytes)
}
