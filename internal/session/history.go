package session

import (
	"context"

	"github.com/R-Stev/invest/internal/host"
	"github.com/R-Stev/invest/internal/logtail"
)

// HistorySource supplies the historical log content of a non-active run.
// offset is the logfile byte position where the read stopped, for a watcher
// to resume at; sources with no local file position report -1.
type HistorySource interface {
	RunLog(ctx context.Context, path, runID string) (lines []string, offset int64, err error)
}

// LocalHistory reads the logfile directly from disk. MaxLines <= 0 loads
// the whole file.
type LocalHistory struct {
	MaxLines int
}

func (l LocalHistory) RunLog(_ context.Context, path, _ string) ([]string, int64, error) {
	return logtail.History(path, l.MaxLines)
}

// HostHistory asks the runner for a run's log content — the one-shot
// outbound request used when the file is not readable locally.
type HostHistory struct {
	Client host.Source
}

func (h HostHistory) RunLog(ctx context.Context, path, runID string) ([]string, int64, error) {
	resp, err := h.Client.FetchRunLog(ctx, host.RunLogQuery{Path: path, RunID: runID})
	if err != nil {
		return nil, -1, err
	}
	return resp.Lines, -1, nil
}
