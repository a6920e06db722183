package watch

import (
	"runtime"

	"go.uber.org/zap"
)

// Watcher observes an external logfile and delivers complete lines as they
// are appended. Start may be called once; from is the byte offset to resume
// at, typically where a history read stopped, and from < 0 means the file's
// current end. Stop releases the underlying resource and is safe to call on
// every exit path, including before Start and after a failed Start.
type Watcher interface {
	Start(from int64, onLine func(string), onError func(error)) error
	Stop() error
}

// New returns the watcher implementation for the host platform: native
// change notification where the OS provides it, polling elsewhere.
func New(path string, logger *zap.Logger) Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !nativeNotify(runtime.GOOS) {
		return newPollWatcher(path, logger)
	}
	return newNotifyWatcher(path, logger)
}

// NewPolling returns the poll-based watcher regardless of platform. Useful
// for network filesystems where change notification is unreliable.
func NewPolling(path string, logger *zap.Logger) Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return newPollWatcher(path, logger)
}

func nativeNotify(goos string) bool {
	switch goos {
	case "linux", "darwin", "windows", "freebsd", "openbsd", "netbsd", "dragonfly":
		return true
	}
	return false
}
