package order

import (
	"database/sql"

	"go.uber.org/zap"

	"foodlocker/internal/order/controller"
	"foodlocker/internal/order/repository"
	"foodlocker/internal/order/service"
)

func NewModule(db *sql.DB, cfg service.Config, logger *zap.Logger) *controller.OrderController {
	repo := repository.NewMySQLOrderRepository(db)
	svc := service.NewOrderService(repo, cfg, logger)
	return controller.NewOrderController(svc, logger)
}
