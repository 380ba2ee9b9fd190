package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"btn-backend/internal/models"
)

const (
	redisKeyPrefix = "btn:tracks:"
	redisTTL       = 24 * time.Hour
)

// RedisStore keeps generated results in Redis so they survive
// restarts. Errors are logged and swallowed; the caller regenerates.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) (*models.GenerateTracksResponse, bool) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache get failed for %s: %v", key, err)
		}
		return nil, false
	}

	var resp models.GenerateTracksResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.Printf("cache entry for %s is corrupt: %v", key, err)
		return nil, false
	}
	return &resp, true
}

func (r *RedisStore) Put(ctx context.Context, key string, resp *models.GenerateTracksResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, raw, redisTTL).Err(); err != nil {
		log.Printf("cache put failed for %s: %v", key, err)
	}
}

func (r *RedisStore) Name() string { return "redis" }
