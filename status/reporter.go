package status

import (
	"context"
	"time"
)

// InfoLogger is the subset of engine.Logger the reporter writes to
type InfoLogger interface {
	Info(msg string, keyValues ...any)
}

// Report logs a snapshot of reg every interval until ctx is done
// Runs on its own goroutine; the frame loop keeps writing the atomics
func Report(ctx context.Context, reg *Registry, interval time.Duration, log InfoLogger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("engine stats", reg.Attrs()...)
			return
		case <-ticker.C:
			log.Info("engine stats", reg.Attrs()...)
		}
	}
}
