// Package host is the HTTP client for the runner daemon that executes
// modeling runs.
//
// The viewer needs three things from the runner: the current status (is a
// run active, and which one), the historical log content of a past run
// (one-shot, for file attachment when the file itself is not readable
// locally), and incremental output from the active run (cursor-based, the
// transport behind the live-stream notification channel).
//
// The Source interface exists so the session and poller can be tested
// against doubles; *Client is the only production implementation.
package host
