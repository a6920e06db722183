package watch

import (
	"fmt"
	"io"

	"github.com/hpcloud/tail"
	"go.uber.org/zap"
)

// pollWatcher tails a logfile by polling, for platforms and filesystems
// without usable change notification.
type pollWatcher struct {
	path   string
	logger *zap.Logger
	t      *tail.Tail
}

func newPollWatcher(path string, logger *zap.Logger) *pollWatcher {
	return &pollWatcher{path: path, logger: logger}
}

func (w *pollWatcher) Start(from int64, onLine func(string), onError func(error)) error {
	location := &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	if from >= 0 {
		location = &tail.SeekInfo{Offset: from, Whence: io.SeekStart}
	}
	t, err := tail.TailFile(w.path, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Poll:     true,
		Location: location,
		Logger:   tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("tail %s: %w", w.path, err)
	}
	w.t = t

	go func() {
		for line := range t.Lines {
			if line.Err != nil {
				onError(line.Err)
				continue
			}
			onLine(line.Text)
		}
	}()
	return nil
}

// Stop ends the tail. Safe before Start.
func (w *pollWatcher) Stop() error {
	if w.t == nil {
		return nil
	}
	w.logger.Debug("stopping poll watcher", zap.String("path", w.path))
	return w.t.Stop()
}
