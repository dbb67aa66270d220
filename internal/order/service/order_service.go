package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodlocker/internal/domain"
	"foodlocker/internal/errors"
	"foodlocker/internal/order/repository"
)

type Repository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, q repository.ListQuery) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

type Config struct {
	// ValidateTransitions turns on server-side enforcement of the
	// received -> cooking -> completed sequence. Off by default: the
	// deployed system relies on the store UI's affordances, and
	// concurrent updates resolve last-write-wins at the database.
	ValidateTransitions bool
}

type OrderService struct {
	repo   Repository
	cfg    Config
	logger *zap.Logger
}

func NewOrderService(repo Repository, cfg Config, logger *zap.Logger) *OrderService {
	return &OrderService{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

type CreateOrderInput struct {
	UserID         string
	Items          []domain.LineItem
	Total          *int64
	DeliveryMethod domain.DeliveryMethod
	PaymentMethod  string
	SeatBlock      string
	SeatNumber     string
	BrandIDs       []string
}

func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:             uuid.New().String(),
		UserID:         input.UserID,
		Items:          input.Items,
		Total:          *input.Total,
		DeliveryMethod: input.DeliveryMethod,
		PaymentMethod:  input.PaymentMethod,
		SeatBlock:      input.SeatBlock,
		SeatNumber:     input.SeatNumber,
		Status:         domain.StatusReceived,
		BrandIDs:       input.BrandIDs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, errors.NewInternalError("persisting order", err)
	}

	s.logger.Info("order created",
		zap.String("orderId", order.ID),
		zap.Int("itemCount", len(order.Items)),
		zap.Int64("total", order.Total),
		zap.String("deliveryMethod", string(order.DeliveryMethod)),
	)

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

// ListOrders resolves the filter and returns matching orders newest-first.
// An empty filter returns every order (the store-admin view); zero matches
// yield an empty slice, not an error.
func (s *OrderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	q := repository.ListQuery{
		UserID:  filter.UserID,
		BrandID: filter.BrandID,
	}

	switch filter.Status {
	case "":
	case domain.StatusActive:
		q.Statuses = []domain.OrderStatus{domain.StatusReceived, domain.StatusCooking}
	default:
		status := domain.OrderStatus(filter.Status)
		if !status.Valid() {
			return nil, errors.NewValidationError("invalid status filter", errors.ValidationDetail{
				Field:   "status",
				Message: "status must be one of received, cooking, completed or active",
			})
		}
		q.Statuses = []domain.OrderStatus{status}
	}

	orders, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, errors.NewInternalError("listing orders", err)
	}

	return orders, nil
}

// UpdateStatus overwrites the order's status and refreshes updatedAt. The
// transition sequence is not enforced unless cfg.ValidateTransitions is set;
// concurrent callers resolve last-write-wins, a known limitation accepted
// for the single-operator-per-order deployment.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !status.Valid() {
		return errors.NewValidationError("invalid status", errors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of received, cooking, completed",
		})
	}

	if s.cfg.ValidateTransitions {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		next, ok := current.Status.Next()
		if !ok || next != status {
			return errors.NewValidationError("illegal status transition", errors.ValidationDetail{
				Field:   "status",
				Message: fmt.Sprintf("cannot move from %s to %s", current.Status, status),
			})
		}
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return err
		}
		return errors.NewInternalError("updating order status", err)
	}

	s.logger.Info("order status updated",
		zap.String("orderId", id),
		zap.String("status", string(status)),
	)

	return nil
}

func validateCreateInput(input CreateOrderInput) error {
	var details []errors.ValidationDetail

	if len(input.Items) == 0 {
		details = append(details, errors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	for idx, item := range input.Items {
		if item.ID == "" {
			details = append(details, errors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].id",
				Message: "item id is required",
			})
		}
		if item.Quantity < 1 {
			details = append(details, errors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].quantity",
				Message: "quantity must be at least 1",
			})
		}
		if item.Price < 0 {
			details = append(details, errors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].price",
				Message: "price must be non-negative",
			})
		}
	}

	if input.Total == nil {
		details = append(details, errors.ValidationDetail{
			Field:   "total",
			Message: "total is required",
		})
	} else if *input.Total < 0 {
		details = append(details, errors.ValidationDetail{
			Field:   "total",
			Message: "total must be non-negative",
		})
	}

	if !input.DeliveryMethod.Valid() {
		details = append(details, errors.ValidationDetail{
			Field:   "deliveryMethod",
			Message: "deliveryMethod must be one of locker, seat, pickup",
		})
	}

	if input.PaymentMethod == "" {
		details = append(details, errors.ValidationDetail{
			Field:   "paymentMethod",
			Message: "paymentMethod is required",
		})
	}

	if len(details) > 0 {
		return errors.NewValidationError("validation failed", details...)
	}

	return nil
}
