package internal

import "testing"

func TestQueueName(t *testing.T) {
	if QueueName("RANKED_SOLO_5x5") != "Solo Queue" {
		t.Error("expected Solo Queue label")
	}
	if QueueName("RANKED_FLEX_SR") != "Flex 5v5" {
		t.Error("expected Flex 5v5 label")
	}
	if QueueName("RANKED_WEIRD") != "RANKED_WEIRD" {
		t.Error("unknown queues pass through unchanged")
	}
}

func TestReport_RiotID(t *testing.T) {
	report := Report{GameName: "Faker", TagLine: "KR1"}
	if report.RiotID() != "Faker#KR1" {
		t.Errorf("expected Faker#KR1, got %s", report.RiotID())
	}
}

func TestReport_HasRanked(t *testing.T) {
	report := Report{}
	if report.HasRanked() {
		t.Error("empty ranked list must report no data")
	}

	report.Ranked = []RankedSummary{{Queue: "Solo Queue", Tier: "GOLD"}}
	if !report.HasRanked() {
		t.Error("expected ranked data present")
	}
}
