// Package shellcheck converts shellcheck JSON output into SARIF. Both the
// plain array emitted by `shellcheck -f json` and the `{"comments": [...]}`
// document emitted by `-f json1` are accepted.
package shellcheck

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/jamacku/sarif-go/internal/log"
	"github.com/jamacku/sarif-go/pkg/convert"
)

const ToolName = "shellcheck"
const InformationURI = "https://www.shellcheck.net/"
const wikiURI = "https://www.shellcheck.net/wiki"

var severityLevels = map[string]string{
	"error":   convert.LevelError,
	"warning": convert.LevelWarning,
	"info":    convert.LevelNote,
	"style":   convert.LevelNote,
}

type comment struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	EndLine   int    `json:"endLine"`
	Column    int    `json:"column"`
	EndColumn int    `json:"endColumn"`
	Level     string `json:"level"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
}

type json1Document struct {
	Comments []comment `json:"comments"`
}

type Converter struct{}

func NewConverter() *Converter {
	return &Converter{}
}

func (c *Converter) Tool() string {
	return ToolName
}

// Detect recognizes shellcheck output by its numeric rule codes or the
// json1 comments wrapper.
func (c *Converter) Detect(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var probe struct {
			Comments json.RawMessage `json:"comments"`
		}
		return json.Unmarshal(trimmed, &probe) == nil && len(probe.Comments) > 0
	}
	var probe []struct {
		Code int    `json:"code"`
		File string `json:"file"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return false
	}
	return len(probe) > 0 && probe[0].Code > 0 && probe[0].File != ""
}

func (c *Converter) Convert(raw []byte) (*sarif.Report, error) {
	comments, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", convert.ErrParse, err)
	}

	builder := convert.NewRunBuilder(ToolName, convert.WithInformationURI(InformationURI))
	for _, comment := range comments {
		level := convert.LevelOrDefault(severityLevels, comment.Level)
		if _, known := severityLevels[comment.Level]; !known {
			log.Debugf("unknown shellcheck level '%s', using '%s'", comment.Level, level)
		}
		ruleID := fmt.Sprintf("SC%d", comment.Code)
		rule := convert.Rule{
			ID:      ruleID,
			Name:    ruleID,
			HelpURI: fmt.Sprintf("%s/%s", wikiURI, ruleID),
		}
		builder.AddResult(rule, level, comment.Message, locations(comment))
	}
	return builder.Build()
}

func parse(raw []byte) ([]comment, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var document json1Document
		if err := json.Unmarshal(trimmed, &document); err != nil {
			return nil, err
		}
		return document.Comments, nil
	}
	var comments []comment
	if err := json.Unmarshal(trimmed, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func locations(c comment) []*sarif.Location {
	region, err := convert.NewRegion(
		convert.Pos{Line: c.Line, Col: c.Column},
		convert.Pos{Line: c.EndLine, Col: c.EndColumn},
	)
	if err != nil {
		log.Debugf("dropping malformed shellcheck location %s:%d:%d: %v", c.File, c.Line, c.Column, err)
		return nil
	}
	return []*sarif.Location{convert.NewLocation(c.File, region)}
}
