// Package logtail reads historical logfile content for file attachment.
//
// History performs the one-shot bulk read used when the viewer attaches to
// a run that is no longer active: the file's lines stream back through the
// same classify-and-append path a live run uses, once, in order. Alongside
// the lines it reports the byte offset it consumed, which is where a file
// watcher should resume so the read-then-watch handoff has no gap.
//
// Missing files are reported, not masked; the session turns that into the
// fixed placeholder message shown to the user.
package logtail
