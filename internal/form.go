package internal

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed web/index.html
var webFS embed.FS

var indexTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

type regionOption struct {
	Code     string
	Name     string
	Selected bool
}

// pageData is everything the form template renders: the input echo, the
// display state, and the recent-lookups panel.
type pageData struct {
	RiotID       string
	Regions      []regionOption
	HasServerKey bool
	State        LookupState
	StatusLine   string
	Report       *Report
	History      []Report
}

func regionOptions(selected Region) []regionOption {
	options := make([]regionOption, 0, len(AllRegions))
	for _, region := range AllRegions {
		options = append(options, regionOption{
			Code:     string(region),
			Name:     region.DisplayName(),
			Selected: region == selected,
		})
	}
	return options
}

// SplitRiotID splits "gameName#tagLine" on the last '#', so game names
// containing '#' still parse.
func SplitRiotID(riotID string) (gameName, tagLine string, ok bool) {
	idx := strings.LastIndex(riotID, "#")
	if idx <= 0 || idx == len(riotID)-1 {
		return "", "", false
	}
	return strings.TrimSpace(riotID[:idx]), strings.TrimSpace(riotID[idx+1:]), true
}
