// Package email delivers the welcome and withdrawal-notice messages.
package email

import (
	"context"
	"time"
)

// SendRequest is one outgoing message. From falls back to the sender's default.
type SendRequest struct {
	To      []string
	From    string
	ReplyTo string
	Subject string
	HTML    string
	Text    string // plain-text alternative; optional
}

// SendResult reports what the provider accepted.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
