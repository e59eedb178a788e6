// Package client implements the feed's WebSocket client: one connection
// to ws://<host>/websocket, a single read loop delivering frames to the
// feed in arrival order, and nothing else.
package client
