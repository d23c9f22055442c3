package internal

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	RiotAPIKey string
	RiotRegion string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDb       string
	PostgresSSLMode  string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	NATSUrl      string
	NATSClientID string

	RateLimitRedisPrefix string

	AppPort  string
	AppEnv   string
	LogLevel string

	CacheEnabled    bool
	DatabaseEnabled bool
}

// LoadConfig reads configuration from the environment, after loading an
// optional .env file. RIOT_API_KEY is only a pre-fill for the lookup form;
// the key submitted with each lookup wins over it.
func LoadConfig() (*Config, error) {
	godotenv.Load()

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", raw, err)
		}
		redisDB = parsed
	}

	cfg := &Config{
		RiotAPIKey: os.Getenv("RIOT_API_KEY"),
		RiotRegion: envOrDefault("RIOT_REGION", "euw1"),

		PostgresHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort:     envOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDb:       os.Getenv("POSTGRES_DB"),
		PostgresSSLMode:  envOrDefault("POSTGRES_SSL_MODE", "disable"),

		RedisHost:     envOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     envOrDefault("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		NATSUrl:      os.Getenv("NATS_URL"),
		NATSClientID: envOrDefault("NATS_CLIENT_ID", "scoutle"),

		RateLimitRedisPrefix: envOrDefault("RATE_LIMIT_REDIS_PREFIX", "scoutle:ratelimit"),

		AppPort:  envOrDefault("APP_PORT", "8000"),
		AppEnv:   envOrDefault("APP_ENV", "development"),
		LogLevel: envOrDefault("LOG_LEVEL", "info"),

		CacheEnabled:    envFlag("CACHE_ENABLED"),
		DatabaseEnabled: envFlag("DATABASE_ENABLED"),
	}

	if _, err := ParseRegion(cfg.RiotRegion); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// envFlag treats unset as enabled; only an explicit "false" disables.
func envFlag(key string) bool {
	return os.Getenv(key) != "false"
}
