// Package app is the composition root of the log viewer.
//
// Run wires the pieces together: it loads the runner's config and the
// user's preferences, builds the HTTP client, decides which run to view
// and over which path, and starts the TUI.
//
// The attachment decision happens exactly once, before the UI starts. An
// active run gets a live session fed by the background output poller; any
// other run gets a file session that bulk-loads the logfile and tails it
// for growth. See the session package for the policy itself.
//
// The poller goroutine drains /api/output with a cursor and publishes each
// line to the stream dispatcher. Fetch failures are logged and retried
// with exponential backoff capped at 30 seconds; the next success resets
// the backoff. The UI never talks to the runner directly while running.
package app
