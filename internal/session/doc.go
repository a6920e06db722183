// Package session ties one run's output to the log buffer.
//
// A session is created per run and commits to exactly one ingestion path
// at construction time. An active run attaches to the live output stream
// through the dispatcher; an inactive run bulk-loads the run's logfile
// and may keep tailing it through a file watcher. The two paths are
// exclusive — a session never consumes both, and a run finishing after
// attachment does not move an already-live session onto the file path.
//
// Every line, from either path, passes through the same classifier before
// it reaches the buffer, so the buffer only ever holds sanitized markup.
// Teardown is unconditional: Close releases the watcher and stream
// subscription on every exit path and never returns an error.
package session
