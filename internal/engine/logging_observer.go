package engine

import (
	"context"
	"log/slog"
)

// LoggingObserver logs every lifecycle event with structured fields.
// Phase events go out at Debug; errors at Warn.
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer on the default logger
func NewLoggingObserver() *LoggingObserver {
	return &LoggingObserver{
		logger: slog.Default(),
	}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	level := slog.LevelDebug
	if event.Type == EventError {
		level = slog.LevelWarn
	}
	lo.logger.Log(context.Background(), level, "query_lifecycle",
		"event", event.Type,
		"session_id", event.SessionID,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
