package internal

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type LookupState string

const (
	StateIdle    LookupState = "idle"
	StateLoading LookupState = "loading"
	StateSuccess LookupState = "success"
	StateFailed  LookupState = "failed"
)

const noRankedData = "no ranked data"

type LookupRequest struct {
	GameName string
	TagLine  string
	Region   Region
	APIKey   string
}

// Scout runs the lookup sequence account -> summoner -> ranked and owns the
// shared display state. Every submit takes the next sequence number; a
// completing lookup only publishes into the display state while its sequence
// is still the newest, so rapid re-submission can never overwrite a newer
// result with an older one.
type Scout struct {
	riot    RiotAPI
	store   ReportStore
	events  EventPublisher
	logger  *Logger
	metrics *MetricsCollector

	mu      sync.Mutex
	seq     uint64
	state   LookupState
	report  *Report
	lastErr *APIError
}

func NewScout(riot RiotAPI, store ReportStore, events EventPublisher, logger *Logger, metrics *MetricsCollector) *Scout {
	return &Scout{
		riot:    riot,
		store:   store,
		events:  events,
		logger:  logger,
		metrics: metrics,
		state:   StateIdle,
	}
}

// begin transitions to Loading and claims the next sequence.
func (s *Scout) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state = StateLoading
	return s.seq
}

// complete applies a finished lookup to the display state unless a newer
// submit has claimed the sequence in the meantime.
func (s *Scout) complete(seq uint64, report *Report, lookupErr *APIError) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return false
	}
	if lookupErr != nil {
		s.state = StateFailed
		s.report = nil
		s.lastErr = lookupErr
	} else {
		s.state = StateSuccess
		s.report = report
		s.lastErr = nil
	}
	return true
}

// State returns a snapshot of the display state for the status endpoint.
func (s *Scout) State() (LookupState, *Report, *APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.report, s.lastErr
}

// Lookup runs one strictly sequential scouting pass. The account call must
// succeed before any summoner call is issued, and the puuid it returns is
// handed to the summoner endpoint unchanged. Ranked absence, including a key
// without league permissions, renders as "no ranked data".
func (s *Scout) Lookup(ctx context.Context, req LookupRequest) (*Report, error) {
	seq := s.begin()
	start := time.Now()

	s.logger.Info("lookup_started").
		Component("scout").
		Operation("lookup").
		Player(req.GameName, req.TagLine, req.Region).
		Log()

	report, err := s.run(ctx, req)
	if err != nil {
		apiErr := AsAPIError(err)
		applied := s.complete(seq, nil, apiErr)
		s.metrics.RecordLookup(false, time.Since(start))
		s.logger.Warn("lookup_failed").
			Component("scout").
			Operation("lookup").
			Player(req.GameName, req.TagLine, req.Region).
			Duration(time.Since(start)).
			Err(apiErr).
			ErrorCode(string(apiErr.Code)).
			Meta("stale", !applied).
			Log()
		return nil, apiErr
	}

	applied := s.complete(seq, report, nil)
	s.metrics.RecordLookup(true, time.Since(start))
	s.logger.Info("lookup_completed").
		Component("scout").
		Operation("lookup").
		Player(report.GameName, report.TagLine, req.Region).
		PUUID(report.PUUID).
		Duration(time.Since(start)).
		Meta("ranked_queues", len(report.Ranked)).
		Meta("stale", !applied).
		Log()

	s.record(ctx, report)
	return report, nil
}

func (s *Scout) run(ctx context.Context, req LookupRequest) (*Report, error) {
	account, err := s.riot.GetAccountByRiotID(ctx, req.Region, req.GameName, req.TagLine, req.APIKey)
	if err != nil {
		return nil, err
	}

	summoner, err := s.riot.GetSummonerByPUUID(ctx, req.Region, account.PUUID, req.APIKey)
	if err != nil {
		return nil, err
	}

	report := &Report{
		GameName:      account.GameName,
		TagLine:       account.TagLine,
		PUUID:         account.PUUID,
		Region:        req.Region,
		SummonerLevel: summoner.SummonerLevel,
		LookedUpAt:    time.Now().UTC(),
	}

	entries, err := s.riot.GetLeagueEntries(ctx, req.Region, summoner.ID, req.APIKey)
	if err != nil {
		// Personal keys often lack league permissions; that renders the
		// same as a player with no ranked history.
		s.logger.Warn("ranked_lookup_unavailable").
			Component("scout").
			Operation("lookup").
			Player(account.GameName, account.TagLine, req.Region).
			Err(err).
			Log()
		entries = nil
	}

	for _, entry := range entries {
		report.Ranked = append(report.Ranked, RankedSummary{
			Queue:        QueueName(entry.QueueType),
			Tier:         entry.Tier,
			Rank:         entry.Rank,
			LeaguePoints: entry.LeaguePoints,
			Wins:         entry.Wins,
			Losses:       entry.Losses,
		})
	}

	if report.HasRanked() {
		report.StatusLine = fmt.Sprintf("scouting report ready for %s", report.RiotID())
	} else {
		report.StatusLine = fmt.Sprintf("scouting report ready for %s (%s)", report.RiotID(), noRankedData)
	}

	return report, nil
}

// record hands the finished report to the event stream when one is wired,
// otherwise straight to the store. Neither failure fails the lookup.
func (s *Scout) record(ctx context.Context, report *Report) {
	if s.events != nil {
		if err := s.events.PublishLookupCompleted(report); err != nil {
			s.logger.Warn("lookup_event_publish_failed").
				Component("scout").
				Operation("record").
				Err(err).
				Log()
		}
		return
	}

	if s.store != nil {
		if err := s.store.SaveReport(ctx, report); err != nil {
			s.logger.Warn("report_persist_failed").
				Component("scout").
				Operation("record").
				Err(err).
				Log()
		}
	}
}
