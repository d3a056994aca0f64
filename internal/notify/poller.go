package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dcortes/volunteer-hub/internal/metrics"
	"github.com/dcortes/volunteer-hub/internal/models"
)

// batchSize caps how many unsent notifications one cycle picks up.
const batchSize = 100

// Store is the slice of persistence the poller needs.
type Store interface {
	ListUnsentNotifications(ctx context.Context, limit int) ([]models.Notification, map[int64]string, error)
	MarkNotificationSent(ctx context.Context, notificationID int64) error
}

// Poller scans for unsent notifications on a fixed interval and hands them
// to the sender. Delivery is at-least-once: a failed send is logged and the
// row is picked up again next cycle. There is no backoff and no attempt cap.
type Poller struct {
	store    Store
	sender   Sender
	interval time.Duration
	logger   *zap.Logger
}

func NewPoller(store Store, sender Sender, interval time.Duration, logger *zap.Logger) *Poller {
	return &Poller{store: store, sender: sender, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled, running one delivery cycle per tick.
// Cycles run on a single goroutine, so an iteration that outlasts the
// interval delays the next tick rather than overlapping it.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("notification poller started", zap.Duration("interval", p.interval))
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("notification poller stopped")
			return
		case <-ticker.C:
			p.RunCycle(ctx)
		}
	}
}

// RunCycle performs one delivery pass and returns the number of emails sent.
func (p *Poller) RunCycle(ctx context.Context) int {
	cycleID := uuid.New().String()[:8]

	pending, emails, err := p.store.ListUnsentNotifications(ctx, batchSize)
	if err != nil {
		p.logger.Error("failed to list unsent notifications",
			zap.String("cycle", cycleID), zap.Error(err))
		return 0
	}
	if len(pending) == 0 {
		return 0
	}

	sent := 0
	for _, n := range pending {
		if err := p.sender.Send(ctx, emails[n.ID], n); err != nil {
			metrics.NotificationSendErrors.Inc()
			p.logger.Error("failed to send notification email",
				zap.String("cycle", cycleID),
				zap.Int64("notification_id", n.ID),
				zap.Error(err))
			continue
		}
		if err := p.store.MarkNotificationSent(ctx, n.ID); err != nil {
			// The email went out but the flag did not stick; the next cycle
			// re-sends. At-least-once.
			p.logger.Error("failed to mark notification sent",
				zap.String("cycle", cycleID),
				zap.Int64("notification_id", n.ID),
				zap.Error(err))
			continue
		}
		metrics.NotificationsSent.Inc()
		sent++
	}

	p.logger.Info("notification cycle complete",
		zap.String("cycle", cycleID),
		zap.Int("pending", len(pending)),
		zap.Int("sent", sent))
	return sent
}
