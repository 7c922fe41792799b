package redis

import (
	"context"
	"fmt"
	"net"

	"vipdining/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// New creates the Redis client backing the rate limiter. The connection is only
// verified when rate limiting is enabled; otherwise the client stays idle.
func New(config *config.Config) (*goRedis.Client, func(), error) {
	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis client")
		}
	}

	if !config.App.RateLimiter.Enable {
		return client, cleanup, nil
	}

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		cleanup()

		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Msg("Connected to Redis")

	return client, cleanup, nil
}
