package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the read-through cache in front of the Riot endpoints. Tests swap
// in an in-memory fake.
type Cache interface {
	Get(ctx context.Context, key string, result interface{}) error
	Set(ctx context.Context, key string, data interface{}, ttl time.Duration) error
	Key(parts ...string) string
}

type CacheManager struct {
	client  *redis.Client
	enabled bool
}

func NewCacheManager(cfg *Config) *CacheManager {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &CacheManager{
		client:  client,
		enabled: cfg.CacheEnabled,
	}
}

func (cm *CacheManager) Get(ctx context.Context, key string, result interface{}) error {
	if !cm.enabled {
		return redis.Nil
	}

	data, err := cm.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), result)
}

func (cm *CacheManager) Set(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	if !cm.enabled {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return cm.client.Set(ctx, key, jsonData, ttl).Err()
}

func (cm *CacheManager) Key(parts ...string) string {
	return "scoutle:" + strings.Join(parts, ":")
}

func (cm *CacheManager) Ping(ctx context.Context) error {
	if !cm.enabled {
		return nil
	}
	return cm.client.Ping(ctx).Err()
}

func (cm *CacheManager) Close() error {
	return cm.client.Close()
}
