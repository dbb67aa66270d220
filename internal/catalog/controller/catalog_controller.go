package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"foodlocker/internal/domain"
	apperrors "foodlocker/internal/errors"
)

type CatalogService interface {
	GetStadiums(ctx context.Context) ([]domain.Stadium, error)
	GetCategories(ctx context.Context, stadiumID string) ([]domain.Category, error)
	GetBrands(ctx context.Context, categoryID string) ([]domain.Brand, error)
	GetBrand(ctx context.Context, id string) (*domain.Brand, error)
	GetItems(ctx context.Context, brandID string) ([]domain.Item, error)
	GetAllItems(ctx context.Context, categoryID string) ([]domain.Item, error)
}

type CatalogController struct {
	service CatalogService
	logger  *zap.Logger
}

func NewCatalogController(service CatalogService, logger *zap.Logger) *CatalogController {
	return &CatalogController{
		service: service,
		logger:  logger,
	}
}

func (c *CatalogController) GetStadiums(w http.ResponseWriter, r *http.Request) {
	stadiums, err := c.service.GetStadiums(r.Context())
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, stadiums)
}

func (c *CatalogController) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.service.GetCategories(r.Context(), chi.URLParam(r, "stadiumId"))
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, categories)
}

func (c *CatalogController) GetBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := c.service.GetBrands(r.Context(), chi.URLParam(r, "categoryId"))
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, brands)
}

func (c *CatalogController) GetBrand(w http.ResponseWriter, r *http.Request) {
	brand, err := c.service.GetBrand(r.Context(), chi.URLParam(r, "brandId"))
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, brand)
}

func (c *CatalogController) GetItems(w http.ResponseWriter, r *http.Request) {
	items, err := c.service.GetItems(r.Context(), chi.URLParam(r, "brandId"))
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, items)
}

func (c *CatalogController) GetAllItems(w http.ResponseWriter, r *http.Request) {
	items, err := c.service.GetAllItems(r.Context(), r.URL.Query().Get("categoryId"))
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, items)
}

func (c *CatalogController) handleServiceError(w http.ResponseWriter, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": err.Error(),
		})
		return
	}

	c.logger.Error("catalog read failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func (c *CatalogController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
