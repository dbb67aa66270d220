package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"foodlocker/internal/account/service"
	"foodlocker/internal/domain"
	apperrors "foodlocker/internal/errors"
)

type AccountService interface {
	RegisterUser(ctx context.Context, input service.RegisterUserInput) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, fields map[string]any) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.StoreManager, error)
	GetManager(ctx context.Context, id string) (*domain.StoreManager, error)
}

type AccountController struct {
	service AccountService
	logger  *zap.Logger
}

func NewAccountController(service AccountService, logger *zap.Logger) *AccountController {
	return &AccountController{
		service: service,
		logger:  logger,
	}
}

type registerUserRequest struct {
	UserID       string  `json:"userId"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone"`
	Newsletter   bool    `json:"newsletter"`
	AuthProvider string  `json:"authProvider"`
}

func (c *AccountController) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	user, err := c.service.RegisterUser(r.Context(), service.RegisterUserInput{
		UserID:       req.UserID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Newsletter:   req.Newsletter,
		AuthProvider: req.AuthProvider,
	})
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, user)
}

func (c *AccountController) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := c.service.GetUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, user)
}

func (c *AccountController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	user, err := c.service.UpdateUser(r.Context(), chi.URLParam(r, "userId"), fields)
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type managerResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	BrandID     *string `json:"brandId"`
	BrandName   string  `json:"brandName"`
	StadiumID   *string `json:"stadiumId"`
	StadiumName string  `json:"stadiumName"`
	Role        string  `json:"role"`
	IsAdmin     bool    `json:"isAdmin"`
}

type loginResponse struct {
	Success bool            `json:"success"`
	Manager managerResponse `json:"manager"`
}

func (c *AccountController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Username == "" || req.Password == "" {
		c.writeValidationError(w, "username and password are required")
		return
	}

	manager, err := c.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		c.handleServiceError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Manager: toManagerResponse(manager),
	})
}

func (c *AccountController) GetManager(w http.ResponseWriter, r *http.Request) {
	manager, err := c.service.GetManager(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, toManagerResponse(manager))
}

// toManagerResponse applies the scope-descriptor fallbacks: a manager row
// without a brand or stadium assignment renders as the all-stores view.
func toManagerResponse(m *domain.StoreManager) managerResponse {
	resp := managerResponse{
		ID:          m.ID,
		Username:    m.Username,
		BrandName:   m.BrandName,
		StadiumName: m.StadiumName,
		Role:        m.Role,
		IsAdmin:     m.IsAdmin,
	}

	if m.BrandID != "" {
		resp.BrandID = &m.BrandID
	}
	if m.StadiumID != "" {
		resp.StadiumID = &m.StadiumID
	}
	if resp.BrandName == "" {
		resp.BrandName = "전체 관리자"
	}
	if resp.StadiumName == "" {
		resp.StadiumName = "전체"
	}
	if resp.Role == "" {
		resp.Role = "store"
	}

	return resp
}

func (c *AccountController) handleServiceError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	// Constant-shape 401: unknown usernames and wrong passwords are
	// indistinguishable from the outside.
	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "UNAUTHORIZED",
			"message": "invalid username or password",
		})
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": err.Error(),
		})
		return
	}

	c.logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func (c *AccountController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":   "VALIDATION_ERROR",
		"message": message,
		"details": details,
	})
}

func (c *AccountController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
