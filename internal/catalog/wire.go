package catalog

import (
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"foodlocker/internal/catalog/controller"
	"foodlocker/internal/catalog/repository"
	"foodlocker/internal/catalog/service"
)

func NewModule(db *sql.DB, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *controller.CatalogController {
	repo := repository.NewMySQLCatalogRepository(db)
	svc := service.NewCatalogService(repo, cache, cacheTTL, logger)
	return controller.NewCatalogController(svc, logger)
}
