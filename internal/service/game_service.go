package service

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"partyup/internal/domain"
	"partyup/pkg/redis"
)

type GameService struct {
	catalog      CatalogService
	cacheService *CacheService
	logger       *zap.Logger
}

func NewGameService(catalog CatalogService, redisClient *redis.Client, logger *zap.Logger) *GameService {
	return &GameService{
		catalog:      catalog,
		cacheService: NewCacheService(redisClient, logger),
		logger:       logger,
	}
}

// SearchGames proxies a free-text search to the external catalog, with the
// results cached by normalized query
func (s *GameService) SearchGames(ctx context.Context, name string) ([]domain.Game, error) {
	queryHash := hashQuery(name)
	return s.cacheService.GetGameSearchWithCache(ctx, queryHash, func(ctx context.Context) ([]domain.Game, error) {
		return s.catalog.SearchGames(ctx, name)
	})
}

func hashQuery(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	return fmt.Sprintf("%x", md5.Sum([]byte(normalized)))
}
