package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/kshitij-139/GEM-JD/internal/model"
	"github.com/kshitij-139/GEM-JD/internal/scheduler"
	"github.com/kshitij-139/GEM-JD/internal/session"
)

// SessionSweepTask evicts sessions idle for longer than ttl. Evicted users
// start over with an empty form and cache.
func SessionSweepTask(sessions *session.Manager, ttl time.Duration, logger *slog.Logger) scheduler.Task {
	return scheduler.Task{
		Name: "session-sweep",
		Run: func(context.Context) error {
			if n := sessions.Cleanup(ttl); n > 0 {
				logger.Info("evicted idle sessions", "count", n, "remaining", sessions.Len())
			}
			return nil
		},
	}
}

// HistoryRetentionTask deletes archived generations older than retention.
func HistoryRetentionTask(history model.HistoryStore, retention time.Duration, logger *slog.Logger) scheduler.Task {
	return scheduler.Task{
		Name: "history-retention",
		Run: func(ctx context.Context) error {
			n, err := history.Cleanup(ctx, retention)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("pruned history", "count", n, "older_than", retention.String())
			}
			return nil
		},
	}
}
