package ports

import (
	"context"
	"errors"
)

// ErrQueueFull is returned when a message cannot be accepted for delivery right now.
var ErrQueueFull = errors.New("contact queue is full")

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// Mailer delivers a contact message to the portfolio owner.
type Mailer interface {
	Send(ctx context.Context, msg ContactMessage) error
}

// ContactService processes a single accepted contact message.
type ContactService interface {
	Deliver(ctx context.Context, msg ContactMessage) error
}
