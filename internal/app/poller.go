package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/R-Stev/invest/internal/host"
	"github.com/R-Stev/invest/internal/stream"
)

const (
	defaultPollInterval = 1 * time.Second
	maxBackoff          = 30 * time.Second
	outputBatchLimit    = 500
)

// StartPoller launches a background goroutine that drains the active run's
// output from the runner and publishes each line to the dispatcher. It
// returns immediately. Fetch failures back off exponentially and clear on
// the next success.
func StartPoller(ctx context.Context, disp *stream.Dispatcher, src host.Source, runID string, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	go func() {
		var cursor uint64
		failures := 0
		for {
			next, err := pollOnce(ctx, disp, src, runID, cursor)
			if err != nil {
				failures++
				logger.Warn("output poll failed",
					zap.String("run", runID),
					zap.Int("failures", failures),
					zap.Error(err))
			} else {
				failures = 0
				cursor = next
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(calculateBackoff(failures, interval)):
			}
		}
	}()
}

// pollOnce fetches one batch of output after cursor and publishes it in
// order. It returns the cursor for the next request.
func pollOnce(ctx context.Context, disp *stream.Dispatcher, src host.Source, runID string, cursor uint64) (uint64, error) {
	batch, err := src.FetchOutput(ctx, host.OutputQuery{
		RunID: runID,
		Since: cursor,
		Limit: outputBatchLimit,
	})
	if err != nil {
		return cursor, err
	}
	for _, line := range batch.Lines {
		disp.Publish(runID, line)
	}
	if batch.Next > cursor {
		cursor = batch.Next
	}
	return cursor, nil
}

func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base << uint(failures)
	if backoff <= 0 || backoff > maxBackoff {
		return maxBackoff
	}
	return backoff
}
