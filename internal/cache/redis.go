package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Domenick1991/hackportal/config"
	"github.com/Domenick1991/hackportal/internal/domain"
)

type RedisCache struct {
	client   *redis.Client
	hacksTTL time.Duration
}

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func NewRedisCache(client *redis.Client, hacksTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, hacksTTL: hacksTTL}
}

// GetHacks returns nil, nil on a cache miss.
func (c *RedisCache) GetHacks(ctx context.Context) ([]domain.Hack, error) {
	data, err := c.client.Get(ctx, hacksKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var hacks []domain.Hack
	if err := json.Unmarshal(data, &hacks); err != nil {
		return nil, err
	}
	return hacks, nil
}

func (c *RedisCache) SetHacks(ctx context.Context, hacks []domain.Hack) error {
	payload, err := json.Marshal(hacks)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, hacksKey(), payload, c.hacksTTL).Err()
}

func (c *RedisCache) InvalidateHacks(ctx context.Context) error {
	return c.client.Del(ctx, hacksKey()).Err()
}

func hacksKey() string {
	return "cache:hacks"
}
