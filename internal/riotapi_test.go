package internal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestRiotClient() *RiotClient {
	cfg := &Config{
		RiotAPIKey: "server-key",
		RiotRegion: "kr",
	}
	return NewRiotClient(cfg, newFakeCache(), testLogger(), testMetrics())
}

func TestRiotClient_SetsTokenHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Riot-Token") != "form-key" {
			t.Errorf("expected form-key header, got %q", r.Header.Get("X-Riot-Token"))
		}
		json.NewEncoder(w).Encode(Account{PUUID: "p", GameName: "Name", TagLine: "TAG"})
	}))
	defer server.Close()

	client := newTestRiotClient()
	client.routingBase = server.URL

	if _, err := client.GetAccountByRiotID(context.Background(), RegionKR, "Name", "TAG", "form-key"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestRiotClient_EmptyKeyFallsBackToServerKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Riot-Token") != "server-key" {
			t.Errorf("expected server-key header, got %q", r.Header.Get("X-Riot-Token"))
		}
		json.NewEncoder(w).Encode(Account{PUUID: "p"})
	}))
	defer server.Close()

	client := newTestRiotClient()
	client.routingBase = server.URL

	if _, err := client.GetAccountByRiotID(context.Background(), RegionKR, "Name", "TAG", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestRiotClient_AccountLookupPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := "/riot/account/v1/accounts/by-riot-id/Faker/KR1"
		if r.URL.Path != expected {
			t.Errorf("expected path %s, got %s", expected, r.URL.Path)
		}
		json.NewEncoder(w).Encode(Account{PUUID: "faker-puuid", GameName: "Faker", TagLine: "KR1"})
	}))
	defer server.Close()

	client := newTestRiotClient()
	client.routingBase = server.URL

	account, err := client.GetAccountByRiotID(context.Background(), RegionKR, "Faker", "KR1", "k")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if account.PUUID != "faker-puuid" {
		t.Errorf("expected faker-puuid, got %s", account.PUUID)
	}
}

func TestRiotClient_SummonerLookupPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := "/lol/summoner/v4/summoners/by-puuid/faker-puuid"
		if r.URL.Path != expected {
			t.Errorf("expected path %s, got %s", expected, r.URL.Path)
		}
		json.NewEncoder(w).Encode(Summoner{ID: "sum-1", PUUID: "faker-puuid", SummonerLevel: 742})
	}))
	defer server.Close()

	client := newTestRiotClient()
	client.platformBase = server.URL

	summoner, err := client.GetSummonerByPUUID(context.Background(), RegionKR, "faker-puuid", "k")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summoner.SummonerLevel != 742 {
		t.Errorf("expected level 742, got %d", summoner.SummonerLevel)
	}
}

func TestRiotClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		code   ErrorCode
	}{
		{http.StatusNotFound, ErrCodePlayerNotFound},
		{http.StatusUnauthorized, ErrCodeInvalidAPIKey},
		{http.StatusForbidden, ErrCodeInvalidAPIKey},
		{http.StatusTooManyRequests, ErrCodeRateLimited},
		{http.StatusInternalServerError, ErrCodeUpstream},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		client := newTestRiotClient()
		client.routingBase = server.URL

		_, err := client.GetAccountByRiotID(context.Background(), RegionKR, "Name", "TAG", "k")
		server.Close()

		if err == nil {
			t.Errorf("status %d: expected error, got nil", tt.status)
			continue
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Errorf("status %d: expected APIError, got %T", tt.status, err)
			continue
		}
		if apiErr.Code != tt.code {
			t.Errorf("status %d: expected code %s, got %s", tt.status, tt.code, apiErr.Code)
		}
	}
}

func TestRiotClient_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := newTestRiotClient()
	client.routingBase = server.URL

	_, err := client.GetAccountByRiotID(context.Background(), RegionKR, "Name", "TAG", "k")
	if err == nil {
		t.Fatal("expected parse error, got nil")
	}
	if AsAPIError(err).Code != ErrCodeParse {
		t.Errorf("expected PARSE_ERROR, got %s", AsAPIError(err).Code)
	}
}

func TestRiotClient_ConnectionError(t *testing.T) {
	client := newTestRiotClient()
	client.routingBase = "http://127.0.0.1:1"

	_, err := client.GetAccountByRiotID(context.Background(), RegionKR, "Name", "TAG", "k")
	if err == nil {
		t.Fatal("expected connection error, got nil")
	}
	if AsAPIError(err).Code != ErrCodeConnection {
		t.Errorf("expected CONNECTION_ERROR, got %s", AsAPIError(err).Code)
	}
}

func TestRiotClient_MissingFields(t *testing.T) {
	client := newTestRiotClient()

	if _, err := client.GetAccountByRiotID(context.Background(), RegionKR, "", "TAG", "k"); err == nil {
		t.Error("expected error for empty game name")
	}
	if _, err := client.GetSummonerByPUUID(context.Background(), RegionKR, "", "k"); err == nil {
		t.Error("expected error for empty puuid")
	}
	if _, err := client.GetLeagueEntries(context.Background(), RegionKR, "", "k"); err == nil {
		t.Error("expected error for empty summoner id")
	}
}

func TestRiotClient_CacheHitSkipsHTTP(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(Summoner{ID: "sum-1", SummonerLevel: 30})
	}))
	defer server.Close()

	client := newTestRiotClient()
	client.platformBase = server.URL

	for i := 0; i < 3; i++ {
		summoner, err := client.GetSummonerByPUUID(context.Background(), RegionKR, "puuid-1", "k")
		if err != nil {
			t.Fatalf("lookup %d: expected no error, got %v", i, err)
		}
		if summoner.SummonerLevel != 30 {
			t.Errorf("lookup %d: expected level 30, got %d", i, summoner.SummonerLevel)
		}
	}

	if calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", calls)
	}
}

func TestRiotClient_GameNameEscaped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/riot/account/v1/accounts/by-riot-id/Hide%20on%20bush/KR1" {
			t.Errorf("unexpected escaped path: %s", r.URL.EscapedPath())
		}
		json.NewEncoder(w).Encode(Account{PUUID: "p"})
	}))
	defer server.Close()

	client := newTestRiotClient()
	client.routingBase = server.URL

	if _, err := client.GetAccountByRiotID(context.Background(), RegionKR, "Hide on bush", "KR1", "k"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestRiotClient_EmptyLeagueEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := newTestRiotClient()
	client.platformBase = server.URL

	entries, err := client.GetLeagueEntries(context.Background(), RegionKR, "sum-1", "k")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty entries, got %d", len(entries))
	}
}
