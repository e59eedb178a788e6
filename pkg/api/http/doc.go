// Package http provides the HTTP API implementation.
//
// The HTTP server exposes endpoints for:
//   - The feed page and its embedded assets (/, /script, /stylesheet)
//   - Message publication and history (/api/v1/messages)
//   - Health checks
//   - Prometheus metrics
//
// The /websocket push endpoint is registered through SetupWebSocket.
package http
