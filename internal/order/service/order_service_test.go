package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"foodlocker/internal/domain"
	apperrors "foodlocker/internal/errors"
	"foodlocker/internal/order/repository"
)

type mockRepository struct {
	InsertFunc       func(ctx context.Context, order *domain.Order) error
	FindByIDFunc     func(ctx context.Context, id string) (*domain.Order, error)
	ListFunc         func(ctx context.Context, q repository.ListQuery) ([]domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, id string, status domain.OrderStatus) error
}

func (m *mockRepository) Insert(ctx context.Context, order *domain.Order) error {
	return m.InsertFunc(ctx, order)
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) List(ctx context.Context, q repository.ListQuery) ([]domain.Order, error) {
	return m.ListFunc(ctx, q)
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return m.UpdateStatusFunc(ctx, id, status)
}

func intPtr(v int64) *int64 { return &v }

func validInput() CreateOrderInput {
	return CreateOrderInput{
		Items: []domain.LineItem{
			{ID: "x1", Name: "Fried Chicken", Price: 5000, Quantity: 2},
		},
		Total:          intPtr(10000),
		DeliveryMethod: domain.DeliveryLocker,
		PaymentMethod:  "card",
		SeatBlock:      "102",
		SeatNumber:     "15",
	}
}

func TestCreateOrder_StampsDefaults(t *testing.T) {
	ctx := context.Background()

	var inserted *domain.Order
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, order *domain.Order) error {
			inserted = order
			return nil
		},
	}

	svc := NewOrderService(repo, Config{}, zap.NewNop())

	order, err := svc.CreateOrder(ctx, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.ID == "" {
		t.Errorf("expected a generated order id")
	}
	if order.Status != domain.StatusReceived {
		t.Errorf("expected status received, got %q", order.Status)
	}
	if !order.CreatedAt.Equal(order.UpdatedAt) {
		t.Errorf("expected createdAt == updatedAt at creation")
	}
	if order.Total != 10000 {
		t.Errorf("expected total 10000, got %d", order.Total)
	}
	if inserted == nil || inserted.ID != order.ID {
		t.Errorf("expected the order to be persisted")
	}
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	svc := NewOrderService(&mockRepository{}, Config{}, zap.NewNop())

	input := validInput()
	input.Items = nil

	_, err := svc.CreateOrder(context.Background(), input)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestCreateOrder_MissingTotal(t *testing.T) {
	svc := NewOrderService(&mockRepository{}, Config{}, zap.NewNop())

	input := validInput()
	input.Total = nil

	_, err := svc.CreateOrder(context.Background(), input)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestCreateOrder_NegativeTotal(t *testing.T) {
	svc := NewOrderService(&mockRepository{}, Config{}, zap.NewNop())

	input := validInput()
	input.Total = intPtr(-1)

	_, err := svc.CreateOrder(context.Background(), input)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestListOrders_ActiveExpansion(t *testing.T) {
	var captured repository.ListQuery
	repo := &mockRepository{
		ListFunc: func(ctx context.Context, q repository.ListQuery) ([]domain.Order, error) {
			captured = q
			return []domain.Order{}, nil
		},
	}

	svc := NewOrderService(repo, Config{}, zap.NewNop())

	_, err := svc.ListOrders(context.Background(), domain.OrderFilter{Status: "active"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(captured.Statuses) != 2 {
		t.Fatalf("expected active to expand to 2 statuses, got %v", captured.Statuses)
	}
	if captured.Statuses[0] != domain.StatusReceived || captured.Statuses[1] != domain.StatusCooking {
		t.Errorf("expected [received cooking], got %v", captured.Statuses)
	}
}

func TestListOrders_InvalidStatus(t *testing.T) {
	svc := NewOrderService(&mockRepository{}, Config{}, zap.NewNop())

	_, err := svc.ListOrders(context.Background(), domain.OrderFilter{Status: "done"})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestListOrders_EmptyResult(t *testing.T) {
	repo := &mockRepository{
		ListFunc: func(ctx context.Context, q repository.ListQuery) ([]domain.Order, error) {
			return []domain.Order{}, nil
		},
	}

	svc := NewOrderService(repo, Config{}, zap.NewNop())

	orders, err := svc.ListOrders(context.Background(), domain.OrderFilter{Status: "received"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders == nil {
		t.Errorf("expected empty slice, got nil")
	}
	if len(orders) != 0 {
		t.Errorf("expected no orders, got %d", len(orders))
	}
}

func TestUpdateStatus_InvalidValue(t *testing.T) {
	svc := NewOrderService(&mockRepository{}, Config{}, zap.NewNop())

	err := svc.UpdateStatus(context.Background(), "o1", "burnt")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo := &mockRepository{
		UpdateStatusFunc: func(ctx context.Context, id string, status domain.OrderStatus) error {
			return apperrors.NewNotFoundError("order " + id + " not found")
		},
	}

	svc := NewOrderService(repo, Config{}, zap.NewNop())

	err := svc.UpdateStatus(context.Background(), "nonexistent-id", domain.StatusCooking)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}

func TestUpdateStatus_IdempotentOverwrite(t *testing.T) {
	calls := 0
	repo := &mockRepository{
		UpdateStatusFunc: func(ctx context.Context, id string, status domain.OrderStatus) error {
			calls++
			return nil
		},
	}

	svc := NewOrderService(repo, Config{}, zap.NewNop())

	// Same transition twice in a row: last write wins, no error either time.
	if err := svc.UpdateStatus(context.Background(), "o1", domain.StatusCooking); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), "o1", domain.StatusCooking); err != nil {
		t.Fatalf("second update: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 repository calls, got %d", calls)
	}
}

func TestUpdateStatus_NoTransitionCheckByDefault(t *testing.T) {
	var written domain.OrderStatus
	repo := &mockRepository{
		UpdateStatusFunc: func(ctx context.Context, id string, status domain.OrderStatus) error {
			written = status
			return nil
		},
	}

	svc := NewOrderService(repo, Config{}, zap.NewNop())

	// Backwards move is accepted when validation is off.
	if err := svc.UpdateStatus(context.Background(), "o1", domain.StatusReceived); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != domain.StatusReceived {
		t.Errorf("expected received to be written, got %q", written)
	}
}

func TestUpdateStatus_ValidateTransitions(t *testing.T) {
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.StatusReceived}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id string, status domain.OrderStatus) error {
			return nil
		},
	}

	svc := NewOrderService(repo, Config{ValidateTransitions: true}, zap.NewNop())

	if err := svc.UpdateStatus(context.Background(), "o1", domain.StatusCooking); err != nil {
		t.Fatalf("legal transition rejected: %v", err)
	}

	err := svc.UpdateStatus(context.Background(), "o1", domain.StatusCompleted)
	if err == nil {
		t.Fatalf("expected skipping a step to be rejected")
	}
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}
