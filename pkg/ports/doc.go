// Package ports defines the interfaces between the livefeed application
// and its adapters (event bus, message history, metrics).
package ports
