package feature

import (
	"context"
	"fmt"
	"time"

	"queuedesk/database/repository"
	"queuedesk/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service answers whether a named toggle is on for a commerce.
type Service interface {
	IsActive(ctx context.Context, commerceID, name string) bool
}

// DefaultFeatureService reads toggles from the repository through an
// optional Redis cache. Lookup failures count as "off".
type DefaultFeatureService struct {
	Repo  repository.FeatureRepository
	Cache *redis.Client
	TTL   time.Duration
}

func cacheKey(commerceID, name string) string {
	return fmt.Sprintf("feature:%s:%s", commerceID, name)
}

func (s *DefaultFeatureService) IsActive(ctx context.Context, commerceID, name string) bool {
	if commerceID == "" {
		return false
	}
	key := cacheKey(commerceID, name)
	if s.Cache != nil {
		val, err := s.Cache.Get(ctx, key).Result()
		if err == nil {
			return val == "1"
		}
		if err != redis.Nil {
			utils.GetLogger().Warn("feature cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	toggle, err := s.Repo.GetByName(ctx, commerceID, name)
	if err != nil {
		utils.GetLogger().Error("feature lookup failed",
			zap.String("commerceId", commerceID), zap.String("name", name), zap.Error(err))
		return false
	}
	active := toggle != nil && toggle.Active

	if s.Cache != nil {
		val := "0"
		if active {
			val = "1"
		}
		if err := s.Cache.Set(ctx, key, val, s.TTL).Err(); err != nil {
			utils.GetLogger().Warn("feature cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return active
}

// Static is a fixed toggle set keyed by name, for every commerce.
type Static map[string]bool

func (s Static) IsActive(_ context.Context, _ string, name string) bool {
	return s[name]
}
