package internal

import "fmt"

// Region is a Riot platform code. The platform host serves summoner and
// league endpoints; the account endpoint lives on a continental routing host.
type Region string

const (
	RegionEUW1 Region = "euw1"
	RegionEUN1 Region = "eun1"
	RegionNA1  Region = "na1"
	RegionKR   Region = "kr"
	RegionBR1  Region = "br1"
	RegionJP1  Region = "jp1"
	RegionOC1  Region = "oc1"
	RegionRU   Region = "ru"
	RegionTR1  Region = "tr1"
	RegionLA1  Region = "la1"
	RegionLA2  Region = "la2"
)

var regionNames = map[Region]string{
	RegionEUW1: "Europe West",
	RegionEUN1: "Europe Nordic & East",
	RegionNA1:  "North America",
	RegionKR:   "Korea",
	RegionBR1:  "Brazil",
	RegionJP1:  "Japan",
	RegionOC1:  "Oceania",
	RegionRU:   "Russia",
	RegionTR1:  "Turkey",
	RegionLA1:  "Latin America North",
	RegionLA2:  "Latin America South",
}

// AllRegions is the fixed list offered by the form selector.
var AllRegions = []Region{
	RegionEUW1, RegionEUN1, RegionNA1, RegionKR, RegionBR1, RegionJP1,
	RegionOC1, RegionRU, RegionTR1, RegionLA1, RegionLA2,
}

func ParseRegion(code string) (Region, error) {
	region := Region(code)
	if _, ok := regionNames[region]; !ok {
		return "", fmt.Errorf("unknown region %q", code)
	}
	return region, nil
}

func (r Region) DisplayName() string {
	return regionNames[r]
}

// PlatformURL is the host for summoner-v4 and league-v4 endpoints.
func (r Region) PlatformURL() string {
	return fmt.Sprintf("https://%s.api.riotgames.com", string(r))
}

// RoutingURL is the continental host for the account-v1 endpoint.
func (r Region) RoutingURL() string {
	switch r {
	case RegionBR1, RegionLA1, RegionLA2, RegionNA1:
		return "https://americas.api.riotgames.com"
	case RegionEUW1, RegionEUN1, RegionTR1, RegionRU:
		return "https://europe.api.riotgames.com"
	case RegionKR, RegionJP1:
		return "https://asia.api.riotgames.com"
	case RegionOC1:
		return "https://sea.api.riotgames.com"
	default:
		return "https://europe.api.riotgames.com"
	}
}
