package redis

import (
	"context"

	"github.com/getsentry/sentry-go"
	r "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"obstacle-detection/config"
)

var DB *r.Client

func Init(cfg config.RedisConfig) {
	DB = r.NewClient(&r.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func GetDB() *r.Client {
	return DB
}

func HealthCheck(ctx context.Context, client *r.Client) bool {
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		sentry.CaptureException(err)
		log.Warn().Err(err).Msg("Redis health check failed")
		return false
	}
	log.Info().Str("reply", pong).Msg("Redis health check passed")
	return true
}
