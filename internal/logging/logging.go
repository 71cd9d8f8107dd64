package logging

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pion/logging"
)

var (
	mu            sync.Mutex
	loggerFactory = logging.NewDefaultLoggerFactory()
)

// NewLogger returns a leveled logger for scope. Loggers created before SetLevel keep the
// level that was active when they were created.
func NewLogger(scope string) logging.LeveledLogger {
	mu.Lock()
	defer mu.Unlock()
	return loggerFactory.NewLogger(scope)
}

// SetLevel changes the default level of loggers created afterwards. Scopes configured through
// PION_LOG_* environment variables keep their level.
func SetLevel(level string) error {
	l, err := ParseLevel(level)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	loggerFactory.DefaultLogLevel = l
	return nil
}

// ParseLevel converts a level name such as "info" or "debug" to a logging.LogLevel.
func ParseLevel(level string) (logging.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "disabled", "off":
		return logging.LogLevelDisabled, nil
	case "error":
		return logging.LogLevelError, nil
	case "warn", "warning":
		return logging.LogLevelWarn, nil
	case "", "info":
		return logging.LogLevelInfo, nil
	case "debug":
		return logging.LogLevelDebug, nil
	case "trace":
		return logging.LogLevelTrace, nil
	}
	return logging.LogLevelDisabled, fmt.Errorf("unknown log level %q", level)
}
