package rds

import (
	"context"
	"fmt"
	"text_trans_api/config"
	"text_trans_api/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client holds the quota counters. Construction does not dial, so
// packages importing rds stay testable without a running redis; tests
// swap it for a miniredis-backed client.
var Client *redis.Client

func init() {
	Client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Cfg.Redis.Host, config.Cfg.Redis.Port),
		Password: config.Cfg.Redis.Password,
	})
}

// Ping verifies connectivity at process startup.
func Ping(ctx context.Context) error {
	return Client.Ping(ctx).Err()
}

func Close() {
	err := Client.Close()
	if err != nil {
		logger.Logger.Error("Error closing redis client", "error", err.Error())
	}
}

func LogStats() {
	for {
		time.Sleep(time.Minute * 1)
		logger.Logger.Info("redis client pool stats", "stats", Client.PoolStats())
	}
}
