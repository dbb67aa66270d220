package account

import (
	"database/sql"

	"go.uber.org/zap"

	"foodlocker/internal/account/controller"
	"foodlocker/internal/account/repository"
	"foodlocker/internal/account/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.AccountController {
	users := repository.NewMySQLUserRepository(db)
	managers := repository.NewMySQLManagerRepository(db)
	svc := service.NewAccountService(users, managers, service.PlaintextVerifier{}, logger)
	return controller.NewAccountController(svc, logger)
}
