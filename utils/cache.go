// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"glimra/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient holds wizard sessions.
	SessionCacheClient *redis.Client
	// PaymentCacheClient holds in-flight payment and submission flags.
	PaymentCacheClient *redis.Client
)

// InitSessionCache initializes the Redis client used for wizard session storage.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Session Cache): %v", err)
	}
}

// GetSessionCacheClient returns the wizard session cache client.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitPaymentCache initializes the Redis client used for payment in-flight flags.
func InitPaymentCache() {
	PaymentCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisPaymentDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := PaymentCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Payment Cache): %v", err)
	}
}

// GetPaymentCacheClient returns the payment flag cache client.
func GetPaymentCacheClient() *redis.Client {
	if PaymentCacheClient == nil {
		InitPaymentCache()
	}
	return PaymentCacheClient
}

// InitRedis initializes all Redis clients at startup.
func InitRedis() {
	InitSessionCache()
	InitPaymentCache()
}
