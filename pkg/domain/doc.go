// Package domain defines the core types shared by the livefeed server
// and its adapters.
package domain
