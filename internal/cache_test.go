package internal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestCacheManager_KeyFormat(t *testing.T) {
	cm := &CacheManager{}

	key := cm.Key("account", "kr", "Faker", "KR1")
	expected := "scoutle:account:kr:Faker:KR1"
	if key != expected {
		t.Errorf("expected %s, got %s", expected, key)
	}
}

func TestCacheManager_DisabledGetMisses(t *testing.T) {
	cm := &CacheManager{enabled: false}

	var out Account
	err := cm.Get(context.Background(), "scoutle:account:kr:x", &out)
	if !errors.Is(err, redis.Nil) {
		t.Errorf("expected redis.Nil from disabled cache, got %v", err)
	}
}

func TestCacheManager_DisabledSetIsNoop(t *testing.T) {
	cm := &CacheManager{enabled: false}

	if err := cm.Set(context.Background(), "k", Account{PUUID: "p"}, time.Minute); err != nil {
		t.Errorf("expected nil from disabled cache set, got %v", err)
	}
}

func TestNewCacheManager_RespectsConfig(t *testing.T) {
	cfg := &Config{
		RedisHost:    "localhost",
		RedisPort:    "6379",
		CacheEnabled: false,
	}

	cm := NewCacheManager(cfg)
	defer cm.Close()

	if cm.enabled {
		t.Error("expected cache disabled per config")
	}
}
