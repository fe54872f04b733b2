package simulation

import (
	"fmt"

	"github.com/tochemey/goakt/v3/log"
)

var logLevels = map[string]log.Level{
	"debug":   log.DebugLevel,
	"info":    log.InfoLevel,
	"warning": log.WarningLevel,
	"error":   log.ErrorLevel,
}

// ParseLogLevel maps a -log-level flag value to a logger level.
func ParseLogLevel(s string) (log.Level, error) {
	if l, ok := logLevels[s]; ok {
		return l, nil
	}
	return log.InfoLevel, fmt.Errorf("unknown log level %q, want debug, info, warning or error", s)
}
