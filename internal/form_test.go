package internal

import "testing"

func TestSplitRiotID(t *testing.T) {
	tests := []struct {
		input    string
		gameName string
		tagLine  string
		ok       bool
	}{
		{"Faker#KR1", "Faker", "KR1", true},
		{"Hide on bush#KR1", "Hide on bush", "KR1", true},
		{"We#ird#TAG", "We#ird", "TAG", true},
		{" Padded #EUW ", "Padded", "EUW", true},
		{"NoTag", "", "", false},
		{"#TAG", "", "", false},
		{"Name#", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		gameName, tagLine, ok := SplitRiotID(tt.input)
		if ok != tt.ok {
			t.Errorf("%q: expected ok=%v, got %v", tt.input, tt.ok, ok)
			continue
		}
		if gameName != tt.gameName || tagLine != tt.tagLine {
			t.Errorf("%q: expected %q/%q, got %q/%q", tt.input, tt.gameName, tt.tagLine, gameName, tagLine)
		}
	}
}

func TestRegionOptions(t *testing.T) {
	options := regionOptions(RegionKR)

	if len(options) != len(AllRegions) {
		t.Fatalf("expected %d options, got %d", len(AllRegions), len(options))
	}

	selected := 0
	for _, option := range options {
		if option.Selected {
			selected++
			if option.Code != "kr" {
				t.Errorf("expected kr selected, got %s", option.Code)
			}
		}
	}
	if selected != 1 {
		t.Errorf("expected exactly one selected option, got %d", selected)
	}
}
