package consumer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"foodlocker/internal/domain"
)

// StatusAPI is the slice of the backend client the tracker needs.
type StatusAPI interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

// Tracker polls a single order and reports every snapshot to the callback.
// Polling stops once the order completes or the context is cancelled. A
// failed tick is logged and skipped; the next tick retries.
type Tracker struct {
	api      StatusAPI
	interval time.Duration
	logger   *zap.Logger
}

func NewTracker(api StatusAPI, interval time.Duration, logger *zap.Logger) *Tracker {
	return &Tracker{api: api, interval: interval, logger: logger}
}

func (t *Tracker) Track(ctx context.Context, orderID string, onUpdate func(*domain.Order)) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		order, err := t.api.GetOrder(ctx, orderID)
		if err != nil {
			t.logger.Warn("order poll failed",
				zap.String("orderId", orderID),
				zap.Error(err),
			)
		} else {
			onUpdate(order)
			if order.Status == domain.StatusCompleted {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
