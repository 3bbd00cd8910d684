package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/rgvg/internal/state"
)

const defaultProgressInterval = 2 * time.Second

// StartProgress launches a background goroutine that logs how many matches
// the session holds at a fixed cadence. It returns a function that stops the
// goroutine and waits for it to exit.
func StartProgress(ctx context.Context, session *state.Session, logger *slog.Logger, interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = defaultProgressInterval
	}
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		last := -1
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			last = report(ctx, session, logger, last)
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}

// report logs the session counters when they changed since the last tick.
func report(ctx context.Context, session *state.Session, logger *slog.Logger, last int) int {
	matches, files := session.Counts()
	if matches == last {
		return last
	}
	logger.InfoContext(ctx, "search progress", "matches", matches, "files", files)
	return matches
}
