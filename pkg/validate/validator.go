// Package validate gates a SARIF report against configured per-level
// result limits, for CI pipelines that fail builds on new findings.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/jamacku/sarif-go/internal/log"
	"github.com/jamacku/sarif-go/pkg/convert"
	"github.com/jamacku/sarif-go/pkg/format"
)

var ErrValidation = errors.New("validation error")

// Limits caps how many results of each level a report may carry. A value
// of -1 allows any number.
type Limits struct {
	Error   int `yaml:"error"   json:"error"`
	Warning int `yaml:"warning" json:"warning"`
	Note    int `yaml:"note"    json:"note"`
	None    int `yaml:"none"    json:"none"`
}

// DefaultLimits fails on any error-level result and allows the rest.
func DefaultLimits() Limits {
	return Limits{Error: 0, Warning: -1, Note: -1, None: -1}
}

// Validate counts result levels across all runs and compares them to the
// limits. Results without an explicit level count as warnings, matching
// the SARIF default.
func Validate(report *sarif.Report, limits Limits) error {
	found := map[string]int{
		convert.LevelError: 0, convert.LevelWarning: 0, convert.LevelNote: 0, convert.LevelNone: 0,
	}
	for _, run := range report.Runs {
		for _, result := range run.Results {
			level := convert.LevelWarning
			if result.Level != nil {
				level = *result.Level
			}
			found[level]++
		}
	}
	log.Infof("Results by level: %v", format.PrettyPrintMap(found))

	allowed := map[string]int{
		convert.LevelError:   limits.Error,
		convert.LevelWarning: limits.Warning,
		convert.LevelNote:    limits.Note,
		convert.LevelNone:    limits.None,
	}

	var errStrings []string
	for _, level := range []string{convert.LevelError, convert.LevelWarning, convert.LevelNote, convert.LevelNone} {
		if allowed[level] == -1 {
			continue
		}
		if found[level] > allowed[level] {
			log.Warnf("%s limit exceeded: %d found, %d allowed", level, found[level], allowed[level])
			errStrings = append(errStrings, fmt.Sprintf("%s (%d found > %d allowed)", level, found[level], allowed[level]))
		}
	}

	if len(errStrings) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errStrings, ", "))
}
