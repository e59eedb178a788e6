// Package websocket provides the server side of the live feed: every
// published message is pushed to connected clients on /websocket as one
// frame.
package websocket
