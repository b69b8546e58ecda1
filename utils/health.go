package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest snapshot of external dependency health.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor pings Mongo and every Redis client once a minute and
// keeps the snapshot in memory for the health endpoint.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			var redisHealth []bool
			for _, client := range redisClients {
				redisHealth = append(redisHealth, client.Ping(ctx).Err() == nil)
			}
			mongoHealthy := mongoClient.Ping(ctx, nil) == nil

			healthMu.Lock()
			currentHealth = HealthStatus{
				Mongo:     mongoHealthy,
				Redis:     redisHealth,
				CheckedAt: time.Now(),
			}
			healthMu.Unlock()
		}
	}()
}
