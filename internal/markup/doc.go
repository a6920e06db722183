// Package markup produces the sanitized fragments accumulated by the log
// buffer.
//
// # Overview
//
// Every line that enters the viewer passes through this package exactly
// once: it is wrapped in a minimal span element carrying the class name the
// classifier assigned (or left bare when no rule matched) and then pushed
// through an allow-list sanitizer. The sanitizer permits exactly one
// {tag, attribute} pair — span with class — and strips or escapes anything
// else, so the accumulated buffer never contains unsanitized input, even
// transiently.
//
// # Sanitizer
//
// The allow-list is enforced with bluemonday, built once at package init.
// Sanitization is idempotent: re-sanitizing an already-sanitized fragment
// yields the same fragment. Wrap escapes the line's text before embedding
// it, so a log line that happens to contain markup is displayed verbatim
// rather than interpreted.
//
// # Decomposition
//
// The display surface does not parse HTML; Decompose gives it the class
// name and decoded text of a fragment so it can map classes onto terminal
// styles.
package markup
