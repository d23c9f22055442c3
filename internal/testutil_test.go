package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

func testLogger() *Logger {
	return &Logger{
		level:       LogLevelError,
		service:     "test",
		environment: "test",
		logger:      log.New(bytes.NewBuffer(nil), "", 0),
	}
}

func testMetrics() *MetricsCollector {
	return NewMetricsCollector(testLogger())
}

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, result interface{}) error {
	if raw, ok := f.data[key]; ok {
		return json.Unmarshal(raw, result)
	}
	return redis.Nil
}

func (f *fakeCache) Set(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeCache) Key(parts ...string) string {
	return "scoutle:" + strings.Join(parts, ":")
}

type fakeRiot struct {
	account    *Account
	accountErr error

	summoner    *Summoner
	summonerErr error

	entries   []LeagueEntry
	leagueErr error

	accountCalls  int
	summonerCalls int
	leagueCalls   int

	lastPUUID      string
	lastSummonerID string
}

func (f *fakeRiot) GetAccountByRiotID(ctx context.Context, region Region, gameName, tagLine, apiKey string) (*Account, error) {
	f.accountCalls++
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	return f.account, nil
}

func (f *fakeRiot) GetSummonerByPUUID(ctx context.Context, region Region, puuid, apiKey string) (*Summoner, error) {
	f.summonerCalls++
	f.lastPUUID = puuid
	if f.summonerErr != nil {
		return nil, f.summonerErr
	}
	return f.summoner, nil
}

func (f *fakeRiot) GetLeagueEntries(ctx context.Context, region Region, summonerID, apiKey string) ([]LeagueEntry, error) {
	f.leagueCalls++
	f.lastSummonerID = summonerID
	if f.leagueErr != nil {
		return nil, f.leagueErr
	}
	return f.entries, nil
}

type fakeLimiter struct {
	allowed bool
	err     error
}

func (f *fakeLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return f.allowed, f.err
}
