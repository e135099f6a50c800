package convert

import (
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/jamacku/sarif-go/pkg/filter"
)

var levelRank = map[string]int{
	LevelNone:    0,
	LevelNote:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// ValidLevel reports whether token is one of the SARIF result levels.
func ValidLevel(token string) bool {
	_, ok := levelRank[token]
	return ok
}

// FilterMinLevel drops results below minLevel from every run. Unknown
// minLevel values keep everything. The rule catalog is left intact; SARIF
// allows catalog entries without results.
func FilterMinLevel(report *sarif.Report, minLevel string) {
	threshold, ok := levelRank[minLevel]
	if !ok {
		return
	}
	for _, run := range report.Runs {
		run.Results = filter.Filter(run.Results, func(result *sarif.Result) bool {
			level := LevelWarning
			if result.Level != nil {
				level = *result.Level
			}
			return levelRank[level] >= threshold
		})
	}
}
