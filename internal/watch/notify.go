package watch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// notifyWatcher tails a logfile using OS change notification. It watches
// the file's parent directory so a file that does not exist yet is picked
// up on its Create event.
type notifyWatcher struct {
	path   string
	logger *zap.Logger

	fw   *fsnotify.Watcher
	done chan struct{}

	pos   int64
	carry []byte

	stopOnce sync.Once
	stopErr  error
}

func newNotifyWatcher(path string, logger *zap.Logger) *notifyWatcher {
	return &notifyWatcher{
		path:   path,
		logger: logger,
		done:   make(chan struct{}),
	}
}

func (w *notifyWatcher) Start(from int64, onLine func(string), onError func(error)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.fw = fw

	if from >= 0 {
		w.pos = from
	} else if info, err := os.Stat(w.path); err == nil {
		w.pos = info.Size()
	}

	// Anything appended between the caller's history read and this point is
	// already past w.pos; catch it up before relying on events.
	if err := w.drain(onLine); err != nil {
		w.logger.Debug("initial drain", zap.Error(err))
	}

	go w.run(onLine, onError)
	return nil
}

func (w *notifyWatcher) run(onLine func(string), onError func(error)) {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				// File replaced or rotated in; start over.
				w.pos = 0
				w.carry = w.carry[:0]
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if err := w.drain(onLine); err != nil {
					onError(err)
				}
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			onError(err)
		case <-w.done:
			return
		}
	}
}

// drain reads everything appended since the last position and delivers each
// complete line. A trailing partial line is carried until its newline
// arrives.
func (w *notifyWatcher) drain(onLine func(string)) error {
	f, err := os.Open(w.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", w.path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Seek(w.pos, io.SeekStart); err != nil {
		return fmt.Errorf("seek %s: %w", w.path, err)
	}

	data, err := io.ReadAll(f)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read %s: %w", w.path, err)
	}
	w.pos += int64(len(data))

	buf := append(w.carry, data...)
	for {
		idx := bytes.IndexByte(buf, '\n')
		if idx < 0 {
			break
		}
		line := string(bytes.TrimSuffix(buf[:idx], []byte("\r")))
		buf = buf[idx+1:]
		onLine(line)
	}
	w.carry = append(w.carry[:0], buf...)
	return nil
}

// Stop releases the directory watch. Idempotent; safe before Start.
func (w *notifyWatcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
		if w.fw != nil {
			w.stopErr = w.fw.Close()
		}
	})
	return w.stopErr
}
