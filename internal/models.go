package internal

import "time"

// Account is the account-v1 response. PUUID is the durable key joining the
// account and summoner endpoints; it must be passed through unchanged.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Summoner is the summoner-v4 response for a platform region.
type Summoner struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int    `json:"summonerLevel"`
}

// LeagueEntry is one ranked queue entry from league-v4. A player may have
// zero entries; that is not an error.
type LeagueEntry struct {
	LeagueID     string      `json:"leagueId"`
	SummonerID   string      `json:"summonerId"`
	QueueType    string      `json:"queueType"`
	Tier         string      `json:"tier"`
	Rank         string      `json:"rank"`
	LeaguePoints int         `json:"leaguePoints"`
	Wins         int         `json:"wins"`
	Losses       int         `json:"losses"`
	HotStreak    bool        `json:"hotStreak"`
	Veteran      bool        `json:"veteran"`
	FreshBlood   bool        `json:"freshBlood"`
	Inactive     bool        `json:"inactive"`
	MiniSeries   *MiniSeries `json:"miniSeries,omitempty"`
}

type MiniSeries struct {
	Target   int    `json:"target"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Progress string `json:"progress"`
}

var queueNames = map[string]string{
	"RANKED_SOLO_5x5": "Solo Queue",
	"RANKED_FLEX_SR":  "Flex 5v5",
}

// QueueName maps a Riot queue type to the label shown on the form.
func QueueName(queueType string) string {
	if name, ok := queueNames[queueType]; ok {
		return name
	}
	return queueType
}

// RankedSummary is one queue's ranked standing, flattened for display.
type RankedSummary struct {
	Queue        string `json:"queue"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// Report is the rendered outcome of one scouting lookup.
type Report struct {
	GameName      string          `json:"gameName"`
	TagLine       string          `json:"tagLine"`
	PUUID         string          `json:"puuid"`
	Region        Region          `json:"region"`
	SummonerLevel int             `json:"summonerLevel"`
	Ranked        []RankedSummary `json:"ranked"`
	StatusLine    string          `json:"statusLine"`
	LookedUpAt    time.Time       `json:"lookedUpAt"`
}

// RiotID renders the player-visible identifier.
func (r Report) RiotID() string {
	return r.GameName + "#" + r.TagLine
}

// HasRanked reports whether any ranked queue data was returned; absence
// renders as "no ranked data" rather than an error.
func (r Report) HasRanked() bool {
	return len(r.Ranked) > 0
}

// LookupEvent is published on NATS when a lookup completes.
type LookupEvent struct {
	ID        string    `json:"id"`
	Report    Report    `json:"report"`
	EmittedAt time.Time `json:"emittedAt"`
}
