package publisher

import (
	"fmt"
	"unicode/utf8"

	"github.com/aescanero/livefeed/pkg/domain"
)

// Validator validates messages before publication
type Validator struct {
	maxBytes int
}

// NewValidator creates a new message validator. maxBytes bounds a single
// payload.
func NewValidator(maxBytes int) *Validator {
	return &Validator{maxBytes: maxBytes}
}

// Validate validates a message
func (v *Validator) Validate(msg *domain.Message) error {
	if msg == nil {
		return fmt.Errorf("message is nil")
	}

	if msg.ID == "" {
		return fmt.Errorf("message ID is required")
	}

	switch msg.Kind {
	case domain.KindText:
		if msg.Text == "" {
			return fmt.Errorf("text message must have a payload")
		}
		if len(msg.Text) > v.maxBytes {
			return fmt.Errorf("payload exceeds %d bytes", v.maxBytes)
		}
		if !utf8.ValidString(msg.Text) {
			return fmt.Errorf("text payload is not valid UTF-8")
		}
	case domain.KindBinary:
		if len(msg.Data) == 0 {
			return fmt.Errorf("binary message must have a payload")
		}
		if len(msg.Data) > v.maxBytes {
			return fmt.Errorf("payload exceeds %d bytes", v.maxBytes)
		}
	default:
		return fmt.Errorf("unsupported message kind: %s", msg.Kind)
	}

	return nil
}
