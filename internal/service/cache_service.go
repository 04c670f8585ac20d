package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"partyup/internal/domain"
	"partyup/pkg/redis"
)

// likedSetMarker keeps a hydrated-but-empty liked set distinguishable from
// a cold cache, since redis reports a set with no members as a missing key.
const likedSetMarker = "__hydrated__"

// CacheService wraps the Redis client with typed helpers for party lists,
// per-user liked-comment sets and catalog search results. Every method is
// nil-safe: without Redis it falls straight through to the loader.
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// GetPartiesWithCache returns the unfiltered party list, from cache when
// fresh, otherwise from the loader (caching the result)
func (s *CacheService) GetPartiesWithCache(ctx context.Context, loader func(ctx context.Context) ([]domain.Party, error)) ([]domain.Party, error) {
	if s.redis == nil {
		return loader(ctx)
	}

	key := s.redis.KeyBuilder.KeyPartiesAll()
	if cached, err := s.redis.Get(ctx, key); err == nil && cached != "" {
		var parties []domain.Party
		if err := json.Unmarshal([]byte(cached), &parties); err == nil {
			return parties, nil
		}
		s.logger.Warn("Failed to decode cached party list, reloading")
	}

	parties, err := loader(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(parties); err == nil {
		if err := s.redis.Set(ctx, key, string(data), redis.TTLParties); err != nil {
			s.logger.Warn("Failed to cache party list", zap.Error(err))
		}
	}

	return parties, nil
}

// GetPartyWithCache returns a single party, from cache when fresh,
// otherwise from the loader. A not-found result is never cached.
func (s *CacheService) GetPartyWithCache(ctx context.Context, partyID string, loader func(ctx context.Context) (*domain.Party, error)) (*domain.Party, error) {
	if s.redis == nil {
		return loader(ctx)
	}

	key := s.redis.KeyBuilder.KeyPartyByID(partyID)
	if cached, err := s.redis.Get(ctx, key); err == nil && cached != "" {
		var party domain.Party
		if err := json.Unmarshal([]byte(cached), &party); err == nil {
			return &party, nil
		}
		s.logger.Warn("Failed to decode cached party, reloading")
	}

	party, err := loader(ctx)
	if err != nil || party == nil {
		return party, err
	}

	if data, err := json.Marshal(party); err == nil {
		if err := s.redis.Set(ctx, key, string(data), redis.TTLPartyByID); err != nil {
			s.logger.Warn("Failed to cache party", zap.Error(err))
		}
	}

	return party, nil
}

// InvalidatePartyCaches drops the cached list and any cached party rows
// after a roster or field mutation
func (s *CacheService) InvalidatePartyCaches(ctx context.Context, partyIDs ...string) {
	if s.redis == nil {
		return
	}

	keys := []string{s.redis.KeyBuilder.KeyPartiesAll()}
	for _, id := range partyIDs {
		keys = append(keys, s.redis.KeyBuilder.KeyPartyByID(id))
	}
	if err := s.redis.Delete(ctx, keys...); err != nil {
		s.logger.Warn("Failed to invalidate party caches", zap.Error(err))
	}
}

// GetLikedCommentIDsWithCache returns the set of comment ids the user has
// liked, hydrating the per-user Redis set from the loader on a cold cache
func (s *CacheService) GetLikedCommentIDsWithCache(ctx context.Context, userID string, loader func(ctx context.Context, userID string) ([]string, error)) ([]string, error) {
	if s.redis == nil {
		return loader(ctx, userID)
	}

	key := s.redis.KeyBuilder.KeyUserLikes(userID)
	exists, err := s.redis.Exists(ctx, key)
	if err == nil && exists > 0 {
		members, err := s.redis.SMembers(ctx, key)
		if err == nil {
			ids := make([]string, 0, len(members))
			for _, member := range members {
				if member != likedSetMarker {
					ids = append(ids, member)
				}
			}
			return ids, nil
		}
		s.logger.Warn("Failed to read liked set from cache", zap.Error(err))
	}

	ids, err := loader(ctx, userID)
	if err != nil {
		return nil, err
	}

	members := make([]interface{}, 0, len(ids)+1)
	members = append(members, likedSetMarker)
	for _, id := range ids {
		members = append(members, id)
	}
	if err := s.redis.SAdd(ctx, key, members...); err != nil {
		s.logger.Warn("Failed to hydrate liked set cache", zap.Error(err))
	} else if err := s.redis.Expire(ctx, key, redis.TTLUserLikes); err != nil {
		s.logger.Warn("Failed to expire liked set cache", zap.Error(err))
	}

	return ids, nil
}

// UpdateLikedComment keeps a hydrated liked set in step with a toggle.
// Best effort: a cold cache is left cold.
func (s *CacheService) UpdateLikedComment(ctx context.Context, userID, commentID string, liked bool) {
	if s.redis == nil {
		return
	}

	key := s.redis.KeyBuilder.KeyUserLikes(userID)
	exists, err := s.redis.Exists(ctx, key)
	if err != nil || exists == 0 {
		return
	}

	if liked {
		err = s.redis.SAdd(ctx, key, commentID)
	} else {
		err = s.redis.SRem(ctx, key, commentID)
	}
	if err != nil {
		s.logger.Warn("Failed to update liked set cache",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}

// TryLikeToggleLock guards a like toggle against rapid double-submission.
// Returns true when this request holds the lock for the guard window.
func (s *CacheService) TryLikeToggleLock(ctx context.Context, userID, commentID string) (bool, error) {
	if s.redis == nil {
		return true, nil
	}
	key := s.redis.KeyBuilder.KeyLikeToggleLock(userID, commentID)
	return s.redis.SetNX(ctx, key, "1", redis.TTLLikeToggleLock)
}

// GetGameSearchWithCache returns catalog search results, cached by query
func (s *CacheService) GetGameSearchWithCache(ctx context.Context, queryHash string, loader func(ctx context.Context) ([]domain.Game, error)) ([]domain.Game, error) {
	if s.redis == nil {
		return loader(ctx)
	}

	key := s.redis.KeyBuilder.KeyGameSearch(queryHash)
	if cached, err := s.redis.Get(ctx, key); err == nil && cached != "" {
		var games []domain.Game
		if err := json.Unmarshal([]byte(cached), &games); err == nil {
			return games, nil
		}
	}

	games, err := loader(ctx)
	if err != nil {
		return nil, err
	}

	// Fire and forget so a slow cache write never blocks the response
	if data, err := json.Marshal(games); err == nil {
		go func() {
			cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.redis.Set(cacheCtx, key, string(data), redis.TTLGameSearch)
		}()
	}

	return games, nil
}
