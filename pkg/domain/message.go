package domain

import "time"

// Kind distinguishes the payload variant of a message at the transport
// boundary. Only text messages are rendered by feed consumers.
type Kind string

const (
	KindText   Kind = "text"
	KindBinary Kind = "binary"
)

// Message is one feed entry as published to the event bus and stored in
// history. Text carries the payload for KindText, Data for KindBinary.
type Message struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Text      string    `json:"text,omitempty"`
	Data      []byte    `json:"data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
