package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"foodlocker/internal/domain"
	apperrors "foodlocker/internal/errors"
)

// API is the typed client both apps use to talk to the backend. Every call
// suspends on the request and maps HTTP failure classes onto the shared
// error taxonomy.
type API struct {
	baseURL string
	http    *http.Client
}

func NewAPI(baseURL string, timeout time.Duration) *API {
	return &API{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type CreateOrderRequest struct {
	UserID         string            `json:"userId,omitempty"`
	Items          []domain.LineItem `json:"items"`
	Total          int64             `json:"total"`
	DeliveryMethod string            `json:"deliveryMethod"`
	PaymentMethod  string            `json:"paymentMethod"`
	SeatBlock      string            `json:"seatBlock,omitempty"`
	SeatNumber     string            `json:"seatNumber,omitempty"`
	BrandIDs       []string          `json:"brandIds,omitempty"`
}

func (a *API) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := a.do(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (a *API) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	if err := a.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (a *API) GetOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	params := url.Values{}
	if filter.UserID != "" {
		params.Set("userId", filter.UserID)
	}
	if filter.Status != "" {
		params.Set("status", filter.Status)
	}
	if filter.BrandID != "" {
		params.Set("brandId", filter.BrandID)
	}

	path := "/api/orders"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var orders []domain.Order
	if err := a.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (a *API) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	body := map[string]string{"status": string(status)}
	return a.do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(orderID)+"/status", body, nil)
}

func (a *API) GetStadiums(ctx context.Context) ([]domain.Stadium, error) {
	var stadiums []domain.Stadium
	if err := a.do(ctx, http.MethodGet, "/api/stadiums", nil, &stadiums); err != nil {
		return nil, err
	}
	return stadiums, nil
}

func (a *API) GetCategories(ctx context.Context, stadiumID string) ([]domain.Category, error) {
	var categories []domain.Category
	if err := a.do(ctx, http.MethodGet, "/api/stadiums/"+url.PathEscape(stadiumID)+"/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (a *API) GetBrands(ctx context.Context, categoryID string) ([]domain.Brand, error) {
	var brands []domain.Brand
	if err := a.do(ctx, http.MethodGet, "/api/categories/"+url.PathEscape(categoryID)+"/brands", nil, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (a *API) GetBrand(ctx context.Context, brandID string) (*domain.Brand, error) {
	var brand domain.Brand
	if err := a.do(ctx, http.MethodGet, "/api/brands/"+url.PathEscape(brandID), nil, &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

func (a *API) GetItems(ctx context.Context, brandID string) ([]domain.Item, error) {
	var items []domain.Item
	if err := a.do(ctx, http.MethodGet, "/api/brands/"+url.PathEscape(brandID)+"/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (a *API) GetAllItems(ctx context.Context, categoryID string) ([]domain.Item, error) {
	path := "/api/items"
	if categoryID != "" {
		path += "?categoryId=" + url.QueryEscape(categoryID)
	}

	var items []domain.Item
	if err := a.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

type LoginResult struct {
	Success bool `json:"success"`
	Manager struct {
		ID          string  `json:"id"`
		Username    string  `json:"username"`
		BrandID     *string `json:"brandId"`
		BrandName   string  `json:"brandName"`
		StadiumID   *string `json:"stadiumId"`
		StadiumName string  `json:"stadiumName"`
		Role        string  `json:"role"`
		IsAdmin     bool    `json:"isAdmin"`
	} `json:"manager"`
}

func (a *API) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}

	var result LoginResult
	if err := a.do(ctx, http.MethodPost, "/api/store-managers/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return a.mapError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func (a *API) mapError(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	message := eb.Message
	if message == "" {
		message = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return apperrors.NewValidationError(message)
	case http.StatusUnauthorized:
		return apperrors.NewUnauthorizedError(message)
	case http.StatusNotFound:
		return apperrors.NewNotFoundError(message)
	case http.StatusServiceUnavailable:
		return apperrors.NewUnavailableError(message, nil)
	default:
		return apperrors.NewInternalError(message, nil)
	}
}
