// Package mail delivers expiry notifications to todo owners. Delivery is
// behind the Sender interface so the worker can run without a configured
// mail backend.
package mail

import (
	"context"
	"log/slog"
)

// Message is a single outbound notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a message to one recipient.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of delivering them. Used
// when no mail backend is configured, and in tests.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.Logger.Info("mail delivery skipped, no backend configured",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
