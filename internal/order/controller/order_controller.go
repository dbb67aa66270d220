package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodlocker/internal/domain"
	apperrors "foodlocker/internal/errors"
	"foodlocker/internal/order/service"
)

type OrderService interface {
	CreateOrder(ctx context.Context, input service.CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

type OrderController struct {
	service OrderService
	logger  *zap.Logger
}

func NewOrderController(service OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{
		service: service,
		logger:  logger,
	}
}

type createOrderRequest struct {
	UserID         string            `json:"userId"`
	Items          []domain.LineItem `json:"items"`
	Total          *int64            `json:"total"`
	DeliveryMethod string            `json:"deliveryMethod"`
	PaymentMethod  string            `json:"paymentMethod"`
	SeatBlock      string            `json:"seatBlock"`
	SeatNumber     string            `json:"seatNumber"`
	BrandIDs       []string          `json:"brandIds"`
}

func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.service.CreateOrder(r.Context(), service.CreateOrderInput{
		UserID:         req.UserID,
		Items:          req.Items,
		Total:          req.Total,
		DeliveryMethod: domain.DeliveryMethod(req.DeliveryMethod),
		PaymentMethod:  req.PaymentMethod,
		SeatBlock:      req.SeatBlock,
		SeatNumber:     req.SeatNumber,
		BrandIDs:       req.BrandIDs,
	})
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, order)
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("orderId", chi.URLParam(r, "orderId")))

	order, err := c.service.GetOrder(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, order)
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter := domain.OrderFilter{
		UserID:  r.URL.Query().Get("userId"),
		Status:  r.URL.Query().Get("status"),
		BrandID: r.URL.Query().Get("brandId"),
	}

	orders, err := c.service.ListOrders(r.Context(), filter)
	if err != nil {
		c.handleServiceError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	logger := c.logger.With(zap.String("orderId", orderID))

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.service.UpdateStatus(r.Context(), orderID, domain.OrderStatus(req.Status)); err != nil {
		c.handleServiceError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *OrderController) handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": err.Error(),
		})
		return
	}

	if _, ok := apperrors.IsUnavailableError(err); ok {
		c.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "UNAVAILABLE",
			"message": "service temporarily unavailable, please retry",
		})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	response := validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	}

	c.writeJSON(w, http.StatusBadRequest, response)
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
