package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	accountctrl "foodlocker/internal/account/controller"
	catalogctrl "foodlocker/internal/catalog/controller"
	orderctrl "foodlocker/internal/order/controller"
)

func NewRouter(
	orders *orderctrl.OrderController,
	catalog *catalogctrl.CatalogController,
	accounts *accountctrl.AccountController,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/stadiums", catalog.GetStadiums)
		r.Get("/stadiums/{stadiumId}/categories", catalog.GetCategories)
		r.Get("/categories/{categoryId}/brands", catalog.GetBrands)
		r.Get("/brands/{brandId}", catalog.GetBrand)
		r.Get("/brands/{brandId}/items", catalog.GetItems)
		r.Get("/items", catalog.GetAllItems)

		r.Post("/orders", orders.CreateOrder)
		r.Get("/orders", orders.ListOrders)
		r.Get("/orders/{orderId}", orders.GetOrder)
		r.Patch("/orders/{orderId}/status", orders.UpdateStatus)

		r.Post("/users", accounts.RegisterUser)
		r.Get("/users/{userId}", accounts.GetUser)
		r.Patch("/users/{userId}", accounts.UpdateUser)

		r.Post("/store-managers/login", accounts.Login)
		r.Get("/store-managers/{id}", accounts.GetManager)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
