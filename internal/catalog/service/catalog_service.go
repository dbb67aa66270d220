package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"foodlocker/internal/domain"
)

type Repository interface {
	ListStadiums(ctx context.Context) ([]domain.Stadium, error)
	ListCategories(ctx context.Context, stadiumID string) ([]domain.Category, error)
	ListBrands(ctx context.Context, categoryID string) ([]domain.Brand, error)
	FindBrand(ctx context.Context, id string) (*domain.Brand, error)
	ListItems(ctx context.Context, brandID string) ([]domain.Item, error)
	ListAllItems(ctx context.Context) ([]domain.Item, error)
	ListItemsByBrandIDs(ctx context.Context, brandIDs []string) ([]domain.Item, error)
}

// CatalogService serves the read-only reference hierarchy with a Redis
// read-through cache. The cache is best effort: a down or cold Redis never
// fails a read, it just costs a database round trip.
type CatalogService struct {
	repo     Repository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewCatalogService(repo Repository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (s *CatalogService) GetStadiums(ctx context.Context) ([]domain.Stadium, error) {
	var stadiums []domain.Stadium
	if s.cacheGet(ctx, "catalog:stadiums", &stadiums) {
		return stadiums, nil
	}

	stadiums, err := s.repo.ListStadiums(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, "catalog:stadiums", stadiums)
	return stadiums, nil
}

func (s *CatalogService) GetCategories(ctx context.Context, stadiumID string) ([]domain.Category, error) {
	key := "catalog:categories:" + stadiumID

	var categories []domain.Category
	if s.cacheGet(ctx, key, &categories) {
		return categories, nil
	}

	categories, err := s.repo.ListCategories(ctx, stadiumID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, categories)
	return categories, nil
}

func (s *CatalogService) GetBrands(ctx context.Context, categoryID string) ([]domain.Brand, error) {
	key := "catalog:brands:" + categoryID

	var brands []domain.Brand
	if s.cacheGet(ctx, key, &brands) {
		return brands, nil
	}

	brands, err := s.repo.ListBrands(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, brands)
	return brands, nil
}

func (s *CatalogService) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	key := "catalog:brand:" + id

	var brand domain.Brand
	if s.cacheGet(ctx, key, &brand) {
		return &brand, nil
	}

	found, err := s.repo.FindBrand(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, found)
	return found, nil
}

func (s *CatalogService) GetItems(ctx context.Context, brandID string) ([]domain.Item, error) {
	key := "catalog:items:" + brandID

	var items []domain.Item
	if s.cacheGet(ctx, key, &items) {
		return items, nil
	}

	items, err := s.repo.ListItems(ctx, brandID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, items)
	return items, nil
}

// GetAllItems returns every item, optionally narrowed to one category. The
// category filter resolves through brands: two sequential lookups, no join,
// matching the persistence collaborator contract.
func (s *CatalogService) GetAllItems(ctx context.Context, categoryID string) ([]domain.Item, error) {
	if categoryID == "" {
		return s.repo.ListAllItems(ctx)
	}

	brands, err := s.GetBrands(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	brandIDs := make([]string, len(brands))
	for i, b := range brands {
		brandIDs[i] = b.ID
	}

	return s.repo.ListItemsByBrandIDs(ctx, brandIDs)
}

func (s *CatalogService) cacheGet(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}

	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(cached), out); err != nil {
		s.logger.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
