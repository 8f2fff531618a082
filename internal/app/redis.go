package app

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/adanyl0v/go-task-manager/internal/config"
)

// globalRedis stays nil when no address is configured.
var globalRedis *redis.Client

func MustConnectRedis() {
	cfg := config.Global().Redis
	if cfg.Addr == "" {
		globalLogger.Info().Msg("redis address not set, rate limiting disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		_ = client.Close()
		globalLogger.Error().
			Err(err).
			Str("addr", cfg.Addr).
			Msg("failed to ping redis")
		panic(err)
	}
	globalLogger.Info().
		Str("addr", cfg.Addr).
		Int("db", cfg.DB).
		Msg("connected to redis")

	globalRedis = client
}

func DisconnectRedis() {
	if globalRedis == nil {
		return
	}
	if err := globalRedis.Close(); err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to disconnect from redis")
		return
	}
	globalLogger.Info().Msg("disconnected from redis")
}
