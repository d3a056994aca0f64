// Package notify delivers notification emails on a fixed polling interval.
// The mail transport itself is pluggable; the hub ships with a logging
// sender for environments without SMTP access.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/dcortes/volunteer-hub/internal/models"
)

// Sender delivers one notification to an email address.
type Sender interface {
	Send(ctx context.Context, email string, n models.Notification) error
}

// LogSender writes deliveries to the log instead of a mail transport.
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) Send(_ context.Context, email string, n models.Notification) error {
	s.Logger.Info("notification email",
		zap.String("to", email),
		zap.String("type", n.Type),
		zap.String("title", n.Title),
	)
	return nil
}
