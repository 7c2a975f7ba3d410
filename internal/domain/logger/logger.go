package logger

import (
	"log/slog"
	"time"
)

// StoreLogger times one round trip to a card store and logs its outcome.
type StoreLogger struct {
	Backend   string
	Operation string
	Target    string
	StartTime time.Time
}

func NewStoreLogger(backend, operation, target string) *StoreLogger {
	return &StoreLogger{
		Backend:   backend,
		Operation: operation,
		Target:    target,
		StartTime: time.Now(),
	}
}

func (l *StoreLogger) Log(err error, records int) {
	duration := time.Since(l.StartTime)

	if err != nil {
		slog.Error("Store operation failed",
			slog.String("type", "store"),
			slog.String("backend", l.Backend),
			slog.String("operation", l.Operation),
			slog.String("target", l.Target),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return
	}

	slog.Debug("Store operation completed",
		slog.String("type", "store"),
		slog.String("backend", l.Backend),
		slog.String("operation", l.Operation),
		slog.String("target", l.Target),
		slog.Duration("took", duration),
		slog.Int("records", records),
	)
}
