package consumer

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"foodlocker/internal/domain"
	apperrors "foodlocker/internal/errors"
)

type mockStatusAPI struct {
	GetOrderFunc func(ctx context.Context, orderID string) (*domain.Order, error)
}

func (m *mockStatusAPI) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return m.GetOrderFunc(ctx, orderID)
}

func TestTracker_StopsWhenOrderCompletes(t *testing.T) {
	statuses := []domain.OrderStatus{domain.StatusReceived, domain.StatusCooking, domain.StatusCompleted}
	calls := 0
	api := &mockStatusAPI{
		GetOrderFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			status := statuses[calls]
			calls++
			return &domain.Order{ID: orderID, Status: status}, nil
		},
	}

	tracker := NewTracker(api, time.Millisecond, zap.NewNop())

	var seen []domain.OrderStatus
	err := tracker.Track(context.Background(), "order-1", func(order *domain.Order) {
		seen = append(seen, order.Status)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) != 3 {
		t.Fatalf("expected 3 updates, got %d", len(seen))
	}
	if seen[2] != domain.StatusCompleted {
		t.Errorf("expected last update completed, got %s", seen[2])
	}
	if calls != 3 {
		t.Errorf("expected polling to stop after completion, got %d calls", calls)
	}
}

func TestTracker_SkipsFailedTicks(t *testing.T) {
	calls := 0
	api := &mockStatusAPI{
		GetOrderFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			calls++
			if calls == 1 {
				return nil, apperrors.NewUnavailableError("backend down", nil)
			}
			return &domain.Order{ID: orderID, Status: domain.StatusCompleted}, nil
		},
	}

	tracker := NewTracker(api, time.Millisecond, zap.NewNop())

	updates := 0
	err := tracker.Track(context.Background(), "order-1", func(order *domain.Order) {
		updates++
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updates != 1 {
		t.Errorf("expected failed tick to be skipped, got %d updates", updates)
	}
}

func TestTracker_StopsOnContextCancel(t *testing.T) {
	api := &mockStatusAPI{
		GetOrderFunc: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return &domain.Order{ID: orderID, Status: domain.StatusCooking}, nil
		},
	}

	tracker := NewTracker(api, time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- tracker.Track(ctx, "order-1", func(*domain.Order) {})
	}()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("tracker did not stop after cancel")
	}
}
