package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Storage   string    `json:"storage"`
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor probes the backing services until ctx is done.
// Nil clients are reported as healthy so that in-memory runs stay green.
func StartHealthMonitor(ctx context.Context, storage string, redisClient *redis.Client, mongoClient *mongo.Client, interval time.Duration) {
	check := func() {
		probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		status := HealthStatus{Storage: storage, Mongo: true, Redis: true, CheckedAt: time.Now()}
		if mongoClient != nil {
			status.Mongo = mongoClient.Ping(probeCtx, nil) == nil
		}
		if redisClient != nil {
			status.Redis = redisClient.Ping(probeCtx).Err() == nil
		}

		healthMu.Lock()
		currentHealth = status
		healthMu.Unlock()
	}

	check()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				check()
			}
		}
	}()
}
