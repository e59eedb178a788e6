// Package publisher implements the feed's publication pipeline: validate
// an inbound message, append it to the bounded history, and fan it out to
// WebSocket subscribers via the event bus.
package publisher
