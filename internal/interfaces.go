package internal

import "context"

type RiotAPI interface {
	GetAccountByRiotID(ctx context.Context, region Region, gameName, tagLine, apiKey string) (*Account, error)
	GetSummonerByPUUID(ctx context.Context, region Region, puuid, apiKey string) (*Summoner, error)
	GetLeagueEntries(ctx context.Context, region Region, summonerID, apiKey string) ([]LeagueEntry, error)
}

type ReportStore interface {
	SaveReport(ctx context.Context, report *Report) error
	History(ctx context.Context, limit int) ([]Report, error)
	Close()
}

type EventPublisher interface {
	PublishLookupCompleted(report *Report) error
}

type RateLimiterInterface interface {
	Allow(ctx context.Context, key string) (bool, error)
}
