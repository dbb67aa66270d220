package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"foodlocker/internal/domain"
	apperrors "foodlocker/internal/errors"
)

type mockQueueAPI struct {
	GetOrdersFunc         func(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	UpdateOrderStatusFunc func(ctx context.Context, orderID string, status domain.OrderStatus) error
}

func (m *mockQueueAPI) GetOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	return m.GetOrdersFunc(ctx, filter)
}

func (m *mockQueueAPI) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	return m.UpdateOrderStatusFunc(ctx, orderID, status)
}

func queueOrder(id string, status domain.OrderStatus, createdAt time.Time) domain.Order {
	return domain.Order{ID: id, Status: status, CreatedAt: createdAt}
}

func TestQueue_RefreshScopesToBrand(t *testing.T) {
	var captured domain.OrderFilter
	api := &mockQueueAPI{
		GetOrdersFunc: func(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
			captured = filter
			return []domain.Order{}, nil
		},
	}

	queue := NewQueue(api, domain.ManagerScope{BrandID: "b1"}, time.Second, zap.NewNop())
	if err := queue.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.BrandID != "b1" {
		t.Errorf("expected brand filter b1, got %q", captured.BrandID)
	}
	if captured.Status != domain.StatusActive {
		t.Errorf("expected active filter, got %q", captured.Status)
	}
}

func TestQueue_RefreshAdminSeesAllBrands(t *testing.T) {
	var captured domain.OrderFilter
	api := &mockQueueAPI{
		GetOrdersFunc: func(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
			captured = filter
			return []domain.Order{}, nil
		},
	}

	queue := NewQueue(api, domain.ManagerScope{BrandID: "b1", IsAdmin: true}, time.Second, zap.NewNop())
	if err := queue.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.BrandID != "" {
		t.Errorf("expected no brand filter for admin, got %q", captured.BrandID)
	}
}

func TestQueue_RefreshKeepsActiveNewestFirst(t *testing.T) {
	base := time.Now()
	api := &mockQueueAPI{
		GetOrdersFunc: func(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
			return []domain.Order{
				queueOrder("o1", domain.StatusReceived, base.Add(-2*time.Minute)),
				queueOrder("o2", domain.StatusCompleted, base.Add(-time.Minute)),
				queueOrder("o3", domain.StatusCooking, base),
			}, nil
		},
	}

	queue := NewQueue(api, domain.ManagerScope{IsAdmin: true}, time.Second, zap.NewNop())
	if err := queue.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orders := queue.Orders()
	if len(orders) != 2 {
		t.Fatalf("expected 2 active orders, got %d", len(orders))
	}
	if orders[0].ID != "o3" || orders[1].ID != "o1" {
		t.Errorf("expected newest first [o3 o1], got [%s %s]", orders[0].ID, orders[1].ID)
	}
}

func TestQueue_AdvanceMovesToNextStatus(t *testing.T) {
	var updatedTo domain.OrderStatus
	api := &mockQueueAPI{
		GetOrdersFunc: func(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
			return []domain.Order{queueOrder("o1", domain.StatusReceived, time.Now())}, nil
		},
		UpdateOrderStatusFunc: func(ctx context.Context, orderID string, status domain.OrderStatus) error {
			updatedTo = status
			return nil
		},
	}

	queue := NewQueue(api, domain.ManagerScope{IsAdmin: true}, time.Second, zap.NewNop())
	if err := queue.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	next, err := queue.Advance(context.Background(), "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != domain.StatusCooking {
		t.Errorf("expected cooking, got %s", next)
	}
	if updatedTo != domain.StatusCooking {
		t.Errorf("expected backend update to cooking, got %s", updatedTo)
	}
}

func TestQueue_AdvanceUnknownOrder(t *testing.T) {
	api := &mockQueueAPI{
		GetOrdersFunc: func(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
			return []domain.Order{}, nil
		},
	}

	queue := NewQueue(api, domain.ManagerScope{IsAdmin: true}, time.Second, zap.NewNop())
	if err := queue.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := queue.Advance(context.Background(), "missing")
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestQueue_AdvanceRejectsConcurrentUpdateOfSameOrder(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	api := &mockQueueAPI{
		GetOrdersFunc: func(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
			return []domain.Order{
				queueOrder("o1", domain.StatusReceived, time.Now()),
				queueOrder("o2", domain.StatusReceived, time.Now()),
			}, nil
		},
		UpdateOrderStatusFunc: func(ctx context.Context, orderID string, status domain.OrderStatus) error {
			if orderID == "o1" {
				close(started)
				<-release
			}
			return nil
		},
	}

	queue := NewQueue(api, domain.ManagerScope{IsAdmin: true}, time.Second, zap.NewNop())
	if err := queue.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := queue.Advance(context.Background(), "o1"); err != nil {
			t.Errorf("first advance failed: %v", err)
		}
	}()

	<-started

	// Same order is locked while the first update is in flight.
	if _, err := queue.Advance(context.Background(), "o1"); err == nil {
		t.Error("expected duplicate advance to be rejected")
	} else if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected validation error for duplicate advance, got %v", err)
	}

	// Other orders are not blocked.
	if _, err := queue.Advance(context.Background(), "o2"); err != nil {
		t.Errorf("advance of other order failed: %v", err)
	}

	close(release)
	wg.Wait()
}

func TestQueue_AdvanceCompletedOrderHasNoNextStatus(t *testing.T) {
	api := &mockQueueAPI{
		GetOrdersFunc: func(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
			return []domain.Order{queueOrder("o1", domain.StatusCompleted, time.Now())}, nil
		},
	}

	queue := NewQueue(api, domain.ManagerScope{IsAdmin: true}, time.Second, zap.NewNop())

	// Bypass the active filter so the queue holds a completed order.
	queue.mu.Lock()
	queue.orders = []domain.Order{queueOrder("o1", domain.StatusCompleted, time.Now())}
	queue.mu.Unlock()

	_, err := queue.Advance(context.Background(), "o1")
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected validation error, got %v", err)
	}
}
