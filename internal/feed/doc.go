// Package feed implements the live message feed: inbound text frames are
// mirrored into a container in arrival order, non-text frames are dropped
// with a diagnostic entry, and transport errors are logged only.
//
// The feed is deliberately minimal: no reconnection, no backoff, no
// outbound messages, no eviction of rendered entries.
package feed
