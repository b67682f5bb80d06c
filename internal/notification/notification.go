package notification

import (
	"context"
	"log/slog"
)

// Message is a single HTML mail.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers one message. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender only logs; used when mail delivery is disabled.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	s.Logger.Info("mail delivery disabled, logging message", "to", msg.To, "subject", msg.Subject)
	return nil
}
