// Package hadolint converts `hadolint -f json` output into SARIF. Each
// record in the JSON array maps 1:1 to one result.
package hadolint

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/jamacku/sarif-go/internal/log"
	"github.com/jamacku/sarif-go/pkg/convert"
)

const ToolName = "hadolint"
const InformationURI = "https://github.com/hadolint/hadolint"
const wikiURI = "https://github.com/hadolint/hadolint/wiki"
const shellcheckWikiURI = "https://www.shellcheck.net/wiki"

var severityLevels = map[string]string{
	"error":   convert.LevelError,
	"warning": convert.LevelWarning,
	"info":    convert.LevelNote,
	"style":   convert.LevelNote,
}

type record struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Converter struct{}

func NewConverter() *Converter {
	return &Converter{}
}

func (c *Converter) Tool() string {
	return ToolName
}

// Detect recognizes hadolint's array form by its string rule codes; the
// shellcheck array carries numeric codes and fails this probe.
func (c *Converter) Detect(raw []byte) bool {
	var probe []struct {
		Code string `json:"code"`
		File string `json:"file"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(raw), &probe); err != nil {
		return false
	}
	return len(probe) > 0 && probe[0].Code != "" && probe[0].File != ""
}

func (c *Converter) Convert(raw []byte) (*sarif.Report, error) {
	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", convert.ErrParse, err)
	}

	builder := convert.NewRunBuilder(ToolName, convert.WithInformationURI(InformationURI))
	for _, r := range records {
		level := convert.LevelOrDefault(severityLevels, r.Level)
		if _, known := severityLevels[r.Level]; !known {
			log.Debugf("unknown hadolint level '%s', using '%s'", r.Level, level)
		}
		builder.AddResult(newRule(r.Code), level, r.Message, locations(r))
	}
	return builder.Build()
}

func locations(r record) []*sarif.Location {
	region, err := convert.NewRegion(convert.Pos{Line: r.Line, Col: r.Column}, convert.Pos{})
	if err != nil {
		log.Debugf("dropping malformed hadolint location %s:%d:%d: %v", r.File, r.Line, r.Column, err)
		return nil
	}
	return []*sarif.Location{convert.NewLocation(r.File, region)}
}

// newRule links DL codes to the hadolint wiki and SC codes to the
// shellcheck wiki; hadolint embeds shellcheck for RUN instructions.
func newRule(code string) convert.Rule {
	rule := convert.Rule{ID: code, Name: code}
	switch {
	case len(code) > 2 && code[:2] == "DL":
		rule.HelpURI = fmt.Sprintf("%s/%s", wikiURI, code)
	case len(code) > 2 && code[:2] == "SC":
		rule.HelpURI = fmt.Sprintf("%s/%s", shellcheckWikiURI, code)
	}
	return rule
}
