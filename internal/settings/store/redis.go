package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kevinbrinsly07/VehicleRentalSystem-admin/internal/settings"
)

const redisKey = "rentaldocs:settings"

// Redis is the cached mirror of the settings. A zero TTL keeps the copy until
// it is overwritten.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (s *Redis) Get(ctx context.Context) ([]byte, error) {
	val, err := s.client.Get(ctx, redisKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting cached settings: %w", err)
	}

	return val, nil
}

func (s *Redis) Set(ctx context.Context, cfg settings.Configuration) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := s.client.Set(ctx, redisKey, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("caching settings: %w", err)
	}

	return nil
}
