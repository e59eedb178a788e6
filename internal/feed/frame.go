package feed

import "github.com/gorilla/websocket"

// Kind is the runtime type of an inbound frame's payload.
type Kind int

const (
	KindText Kind = iota
	KindBinary
	KindPing
	KindPong
	KindClose
	KindUnknown
)

// String returns the kind's name as used in diagnostic log entries.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	case KindPing:
		return "ping"
	case KindPong:
		return "pong"
	case KindClose:
		return "close"
	default:
		return "unknown"
	}
}

// Frame is one discrete message delivered over the connection, tagged by
// payload kind. Only text frames carry a renderable payload.
type Frame struct {
	Kind    Kind
	Payload []byte
}

// TextFrame builds a text frame from a payload string.
func TextFrame(text string) Frame {
	return Frame{Kind: KindText, Payload: []byte(text)}
}

// BinaryFrame builds a binary frame from raw bytes.
func BinaryFrame(data []byte) Frame {
	return Frame{Kind: KindBinary, Payload: data}
}

// FrameFromMessage converts a websocket message type and payload into a
// tagged frame.
func FrameFromMessage(messageType int, payload []byte) Frame {
	var kind Kind
	switch messageType {
	case websocket.TextMessage:
		kind = KindText
	case websocket.BinaryMessage:
		kind = KindBinary
	case websocket.PingMessage:
		kind = KindPing
	case websocket.PongMessage:
		kind = KindPong
	case websocket.CloseMessage:
		kind = KindClose
	default:
		kind = KindUnknown
	}
	return Frame{Kind: kind, Payload: payload}
}
