package main

import (
	"context"
	"time"

	"github.com/lixenwraith/ninja-engine/core"
	"github.com/lixenwraith/ninja-engine/status"
)

// startReporter logs reg periodically until the returned stop is called
// stop blocks until the final snapshot is written, so it must run before the log is closed
func startReporter(parent context.Context, reg *status.Registry, interval time.Duration, log status.InfoLogger) (stop func()) {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	core.Go(func() {
		defer close(done)
		status.Report(ctx, reg, interval, log)
	})
	return func() {
		cancel()
		<-done
	}
}
