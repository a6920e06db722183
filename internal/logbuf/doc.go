// Package logbuf holds the accumulated log text for one run.
//
// The buffer is append-only between resets and moves through three states:
// Empty on creation, Accumulating after the first append, and back to Empty
// when a new run resets it. Teardown simply discards the buffer; nothing is
// persisted.
//
// Writers are the session's single-threaded append path; the display reads
// snapshots at its own cadence and compares versions to decide whether a
// re-render is needed.
package logbuf
