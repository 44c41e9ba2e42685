package engine

import (
	"context"
	"log/slog"
)

// LoggingObserver is a simple observer that logs all events using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a new logging observer; nil uses slog.Default()
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent implements the Observer interface
// Row model recomputations are frequent, so they go to Debug
func (lo *LoggingObserver) OnEvent(event Event) {
	level := slog.LevelInfo
	if event.Type == EventRowModel {
		level = slog.LevelDebug
	}
	lo.logger.Log(context.Background(), level, "table_event",
		"event", event.Type,
		"table_id", event.TableID,
		"slice", event.Slice,
		"replaced", event.Replaced,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
