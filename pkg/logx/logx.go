// Package logx is the session-wide structured logger every loomc command
// and pkg/loader use, aliased `log "github.com/sirupsen/logrus"` the same
// way Consensys-go-corset's pkg/util/perfstats.go and cmd/testgen/main.go
// wire logrus directly rather than through a wrapper interface — the
// pack's one precedent for a logging library used for its own sake rather
// than pulled in transitively.
package logx

import (
	log "github.com/sirupsen/logrus"

	"github.com/loomlang/loom/pkg/config"
)

// New builds a session logger configured from cfg's Logging section:
// level and either text or JSON formatting.
func New(cfg config.LoggingConfig) *log.Logger {
	logger := log.New()

	level, err := log.ParseLevel(string(cfg.Level))
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.JSON {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	return logger
}

// WithSession returns an entry carrying the session's correlation ID on
// every subsequent log line it emits.
func WithSession(logger *log.Logger, sessionID string) *log.Entry {
	return logger.WithField("session", sessionID)
}
