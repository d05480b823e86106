package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avshorin/airport-api/config"
	"github.com/avshorin/airport-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds the airport reference list. Flight availability is
// deliberately not cached: it must be recomputed on every read.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	data, err := c.client.Get(ctx, airportsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var airports []domain.Airport
	if err := json.Unmarshal(data, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	payload, err := json.Marshal(airports)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, airportsKey(), payload, c.ttl).Err()
}

// InvalidateAirports drops the cached list after an admin write.
func (c *RedisCache) InvalidateAirports(ctx context.Context) error {
	return c.client.Del(ctx, airportsKey()).Err()
}

func airportsKey() string {
	return "cache:airports"
}
