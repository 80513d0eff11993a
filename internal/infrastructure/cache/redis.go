package cache

import (
	"context"
	"fmt"
	"time"

	"medisync/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient connects the token store and session event bus. The auth
// layer and the session watcher both depend on it, so startup fails when
// redis is unreachable.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:   cfg.Password,
		DB:         cfg.DB,
		ClientName: "medisync",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("medisync cannot reach redis at %s:%s: %w", cfg.Host, cfg.Port, err)
	}

	logrus.Infof("medisync session store connected to redis at %s:%s", cfg.Host, cfg.Port)

	return client, nil
}
