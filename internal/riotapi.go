package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const riotRequestTimeout = 10 * time.Second

// RiotClient issues the three read-only lookups against the Riot API. Each
// operation is one GET with the key in the X-Riot-Token header, a fixed
// timeout and no retry.
type RiotClient struct {
	defaultAPIKey string
	cache         Cache
	logger        *Logger
	metrics       *MetricsCollector
	client        *http.Client

	// Test hooks: when set they replace the per-region hosts.
	platformBase string
	routingBase  string
}

func NewRiotClient(cfg *Config, cache Cache, logger *Logger, metrics *MetricsCollector) *RiotClient {
	return &RiotClient{
		defaultAPIKey: cfg.RiotAPIKey,
		cache:         cache,
		logger:        logger,
		metrics:       metrics,
		client: &http.Client{
			Timeout: riotRequestTimeout,
		},
	}
}

func (c *RiotClient) platformURL(region Region) string {
	if c.platformBase != "" {
		return c.platformBase
	}
	return region.PlatformURL()
}

func (c *RiotClient) routingURL(region Region) string {
	if c.routingBase != "" {
		return c.routingBase
	}
	return region.RoutingURL()
}

func (c *RiotClient) doRequest(ctx context.Context, requestURL, apiKey string) ([]byte, error) {
	if apiKey == "" {
		apiKey = c.defaultAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, ConnectionError(fmt.Sprintf("building request: %v", err))
	}
	req.Header.Set("X-Riot-Token", apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordRiotError(ErrCodeConnection)
		return nil, ConnectionError("riot API unreachable")
	}
	defer resp.Body.Close()

	if err := c.statusError(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordRiotError(ErrCodeConnection)
		return nil, ConnectionError("reading riot API response")
	}
	return body, nil
}

func (c *RiotClient) statusError(status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound:
		c.metrics.RecordRiotError(ErrCodePlayerNotFound)
		return NotFoundError("player not found")
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		c.metrics.RecordRiotError(ErrCodeInvalidAPIKey)
		return AuthError()
	case status == http.StatusTooManyRequests:
		c.metrics.RecordRiotError(ErrCodeRateLimited)
		return RateLimitError()
	default:
		c.metrics.RecordRiotError(ErrCodeUpstream)
		return UpstreamError(fmt.Sprintf("riot API returned status %d", status))
	}
}

// fetch runs a cached GET: cache hit short-circuits, a miss goes to the API
// and stores the decoded value behind the same key.
func (c *RiotClient) fetch(ctx context.Context, cacheKey, requestURL, apiKey string, ttl time.Duration, result interface{}) error {
	if err := c.cache.Get(ctx, cacheKey, result); err == nil {
		c.metrics.RecordCacheHit(cacheKey)
		c.logger.Debug("riot_cache_hit").
			Component("riot").
			Operation("fetch").
			Cache(true, cacheKey).
			Log()
		return nil
	}
	c.metrics.RecordCacheMiss(cacheKey)

	data, err := c.doRequest(ctx, requestURL, apiKey)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, result); err != nil {
		c.metrics.RecordRiotError(ErrCodeParse)
		return ParseError("malformed riot API response")
	}

	c.cache.Set(ctx, cacheKey, result, ttl)
	return nil
}

// GetAccountByRiotID resolves gameName#tagLine to an account on the
// continental routing host for the region.
func (c *RiotClient) GetAccountByRiotID(ctx context.Context, region Region, gameName, tagLine, apiKey string) (*Account, error) {
	if gameName == "" || tagLine == "" {
		return nil, MissingFields("gameName and tagLine are required")
	}

	requestURL := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.routingURL(region), url.PathEscape(gameName), url.PathEscape(tagLine))
	cacheKey := c.cache.Key("account", string(region), gameName, tagLine)

	var account Account
	if err := c.fetch(ctx, cacheKey, requestURL, apiKey, 6*time.Hour, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetSummonerByPUUID fetches the per-region summoner record. The puuid must
// be the one returned by the account lookup, unchanged.
func (c *RiotClient) GetSummonerByPUUID(ctx context.Context, region Region, puuid, apiKey string) (*Summoner, error) {
	if puuid == "" {
		return nil, MissingFields("puuid is required")
	}

	requestURL := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s",
		c.platformURL(region), url.PathEscape(puuid))
	cacheKey := c.cache.Key("summoner", string(region), puuid)

	var summoner Summoner
	if err := c.fetch(ctx, cacheKey, requestURL, apiKey, time.Hour, &summoner); err != nil {
		return nil, err
	}
	return &summoner, nil
}

// GetLeagueEntries fetches ranked entries for a summoner. An empty slice is
// a normal result, not an error.
func (c *RiotClient) GetLeagueEntries(ctx context.Context, region Region, summonerID, apiKey string) ([]LeagueEntry, error) {
	if summonerID == "" {
		return nil, MissingFields("summonerId is required")
	}

	requestURL := fmt.Sprintf("%s/lol/league/v4/entries/by-summoner/%s",
		c.platformURL(region), url.PathEscape(summonerID))
	cacheKey := c.cache.Key("league", string(region), summonerID)

	var entries []LeagueEntry
	if err := c.fetch(ctx, cacheKey, requestURL, apiKey, 30*time.Minute, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
