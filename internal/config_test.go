package internal

import "testing"

func clearConfigEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"RIOT_API_KEY", "RIOT_REGION",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD",
		"POSTGRES_DB", "POSTGRES_SSL_MODE",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"NATS_URL", "NATS_CLIENT_ID",
		"RATE_LIMIT_REDIS_PREFIX",
		"APP_PORT", "APP_ENV", "LOG_LEVEL",
		"CACHE_ENABLED", "DATABASE_ENABLED",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.RiotRegion != "euw1" {
		t.Errorf("expected default region euw1, got %s", cfg.RiotRegion)
	}
	if cfg.PostgresHost != "localhost" || cfg.PostgresPort != "5432" {
		t.Errorf("unexpected postgres defaults: %s:%s", cfg.PostgresHost, cfg.PostgresPort)
	}
	if cfg.RedisHost != "localhost" || cfg.RedisPort != "6379" {
		t.Errorf("unexpected redis defaults: %s:%s", cfg.RedisHost, cfg.RedisPort)
	}
	if cfg.RedisDB != 0 {
		t.Errorf("expected redis DB 0, got %d", cfg.RedisDB)
	}
	if cfg.AppPort != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.AppPort)
	}
	if !cfg.CacheEnabled {
		t.Error("expected cache enabled by default")
	}
	if !cfg.DatabaseEnabled {
		t.Error("expected database enabled by default")
	}
	if cfg.RiotAPIKey != "" {
		t.Errorf("expected no default API key, got %q", cfg.RiotAPIKey)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("RIOT_API_KEY", "RGAPI-test")
	t.Setenv("RIOT_REGION", "kr")
	t.Setenv("REDIS_DB", "5")
	t.Setenv("APP_PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("DATABASE_ENABLED", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.RiotAPIKey != "RGAPI-test" {
		t.Errorf("expected RGAPI-test, got %s", cfg.RiotAPIKey)
	}
	if cfg.RiotRegion != "kr" {
		t.Errorf("expected kr, got %s", cfg.RiotRegion)
	}
	if cfg.RedisDB != 5 {
		t.Errorf("expected redis DB 5, got %d", cfg.RedisDB)
	}
	if cfg.AppPort != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.AppPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", cfg.LogLevel)
	}
	if cfg.CacheEnabled {
		t.Error("expected cache disabled")
	}
	if cfg.DatabaseEnabled {
		t.Error("expected database disabled")
	}
}

func TestLoadConfig_InvalidRedisDB(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("REDIS_DB", "not-a-number")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for invalid REDIS_DB")
	}
}

func TestLoadConfig_InvalidRegion(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("RIOT_REGION", "middle-earth")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for unknown region")
	}
}
