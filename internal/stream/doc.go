// Package stream is the inbound notification channel between the host's
// output poller and the session viewing a run. One handler per run id;
// payloads are delivered synchronously in publish order.
package stream
