package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"foodlocker/internal/domain"
	apperrors "foodlocker/internal/errors"
)

// QueueAPI is the slice of the backend client the fulfillment queue needs.
type QueueAPI interface {
	GetOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

// Queue is the store-side view of pending orders. It polls the backend for
// orders in the manager's scope and advances them one status at a time.
// State is never updated optimistically; every advance is followed by a
// refetch so the view always reflects the backend.
type Queue struct {
	api      QueueAPI
	scope    domain.ManagerScope
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	orders   []domain.Order
	inFlight map[string]bool
}

func NewQueue(api QueueAPI, scope domain.ManagerScope, interval time.Duration, logger *zap.Logger) *Queue {
	return &Queue{
		api:      api,
		scope:    scope,
		interval: interval,
		logger:   logger,
		inFlight: map[string]bool{},
	}
}

// Refresh fetches the current queue. Admins see every active order; everyone
// else only their own brand's.
func (q *Queue) Refresh(ctx context.Context) error {
	filter := domain.OrderFilter{Status: domain.StatusActive}
	if !q.scope.IsAdmin {
		filter.BrandID = q.scope.BrandID
	}

	orders, err := q.api.GetOrders(ctx, filter)
	if err != nil {
		return err
	}

	active := orders[:0]
	for _, o := range orders {
		if o.Status.IsActive() {
			active = append(active, o)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})

	q.mu.Lock()
	q.orders = active
	q.mu.Unlock()
	return nil
}

// Orders returns a copy of the last fetched queue, newest first.
func (q *Queue) Orders() []domain.Order {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]domain.Order{}, q.orders...)
}

// Run polls the queue until the context is cancelled, reporting each
// successful refresh. Failed ticks are logged and skipped.
func (q *Queue) Run(ctx context.Context, onUpdate func([]domain.Order)) error {
	ticker := time.NewTicker(q.interval)
	defer ticker.Stop()

	for {
		if err := q.Refresh(ctx); err != nil {
			q.logger.Warn("queue poll failed", zap.Error(err))
		} else {
			onUpdate(q.Orders())
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Advance moves an order to its next status and refetches the queue. A
// second advance for the same order is rejected while the first is still in
// flight; other orders are unaffected.
func (q *Queue) Advance(ctx context.Context, orderID string) (domain.OrderStatus, error) {
	q.mu.Lock()
	if q.inFlight[orderID] {
		q.mu.Unlock()
		return "", apperrors.NewValidationError("order update already in progress")
	}

	var current *domain.Order
	for i := range q.orders {
		if q.orders[i].ID == orderID {
			current = &q.orders[i]
			break
		}
	}
	if current == nil {
		q.mu.Unlock()
		return "", apperrors.NewNotFoundError("order not found in queue")
	}

	next, ok := current.Status.Next()
	if !ok {
		q.mu.Unlock()
		return "", apperrors.NewValidationError("order has no next status")
	}

	q.inFlight[orderID] = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		delete(q.inFlight, orderID)
		q.mu.Unlock()
	}()

	if err := q.api.UpdateOrderStatus(ctx, orderID, next); err != nil {
		return "", err
	}

	if err := q.Refresh(ctx); err != nil {
		q.logger.Warn("refresh after advance failed",
			zap.String("orderId", orderID),
			zap.Error(err),
		)
	}
	return next, nil
}
