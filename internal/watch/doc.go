// Package watch abstracts the two file-attachment strategies behind one
// capability interface.
//
// # Strategies
//
// Two implementations exist, selected by host operating system:
//
//  1. Notify: watches the logfile's parent directory with fsnotify and
//     drains newly appended bytes on Write/Create events. Used where the
//     OS provides native change notification.
//  2. Poll: a polling tail (hpcloud/tail with Poll enabled) for platforms
//     and filesystems where notification is unavailable or unreliable.
//
// Both deliver only lines appended after attachment; historical content is
// loaded separately (see logtail). Partial lines are held back until their
// terminating newline arrives, so callers always observe complete lines.
//
// # Lifetime
//
// A watcher is a scoped resource: acquired via Start, released
// unconditionally via Stop on all exit paths, including failures during
// acquisition. Stop is idempotent and safe to call before Start. Errors
// during release are returned for the caller to log and swallow — teardown
// must not raise.
package watch
