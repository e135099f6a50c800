// Package clippy converts `cargo clippy --message-format=json` diagnostics
// into SARIF. The input is a stream of JSON lines; each line is either a
// cargo build envelope or a bare rustc diagnostic.
package clippy

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/jamacku/sarif-go/internal/log"
	"github.com/jamacku/sarif-go/pkg/convert"
)

const ToolName = "clippy"
const InformationURI = "https://rust-lang.github.io/rust-clippy/"
const lintIndexURI = "https://rust-lang.github.io/rust-clippy/master/index.html"

var severityLevels = map[string]string{
	"error":                          convert.LevelError,
	"error: internal compiler error": convert.LevelError,
	"warning":                        convert.LevelWarning,
	"note":                           convert.LevelNote,
	"help":                           convert.LevelNote,
	"failure-note":                   convert.LevelNote,
}

type diagnostic struct {
	Message string          `json:"message"`
	Code    *diagnosticCode `json:"code"`
	Level   string          `json:"level"`
	Spans   []span          `json:"spans"`
}

type diagnosticCode struct {
	Code string `json:"code"`
}

type span struct {
	FileName    string `json:"file_name"`
	LineStart   int    `json:"line_start"`
	LineEnd     int    `json:"line_end"`
	ColumnStart int    `json:"column_start"`
	ColumnEnd   int    `json:"column_end"`
	IsPrimary   bool   `json:"is_primary"`
}

type Converter struct{}

func NewConverter() *Converter {
	return &Converter{}
}

func (c *Converter) Tool() string {
	return ToolName
}

// Detect recognizes the cargo JSON-lines stream by its envelope or a bare
// rustc diagnostic on the first non-empty line.
func (c *Converter) Detect(raw []byte) bool {
	line := firstLine(raw)
	if len(line) == 0 || line[0] != '{' {
		return false
	}
	var probe struct {
		Reason  string          `json:"reason"`
		Message json.RawMessage `json:"message"`
		Spans   json.RawMessage `json:"spans"`
	}
	if err := json.Unmarshal(line, &probe); err != nil {
		return false
	}
	return probe.Reason != "" || (len(probe.Message) > 0 && len(probe.Spans) > 0)
}

func firstLine(raw []byte) []byte {
	for _, line := range bytes.Split(raw, []byte{'\n'}) {
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			return trimmed
		}
	}
	return nil
}

func (c *Converter) Convert(raw []byte) (*sarif.Report, error) {
	builder := convert.NewRunBuilder(ToolName, convert.WithInformationURI(InformationURI))

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		diag, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", convert.ErrParse, lineno, err)
		}
		if diag == nil {
			continue
		}
		addDiagnostic(builder, diag)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", convert.ErrParse, lineno, err)
	}

	return builder.Build()
}

// parseLine decodes one JSON line. A nil diagnostic with nil error means
// the line is valid JSON but carries nothing convertible. The message
// field is a nested object in the cargo envelope but a plain string in a
// bare rustc diagnostic, so the shape is probed before decoding.
func parseLine(line []byte) (*diagnostic, error) {
	var envelope struct {
		Reason  string          `json:"reason"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(line, &envelope); err != nil {
		return nil, err
	}
	if envelope.Reason != "" {
		if envelope.Reason != "compiler-message" || len(envelope.Message) == 0 {
			return nil, nil
		}
		var diag diagnostic
		if err := json.Unmarshal(envelope.Message, &diag); err != nil {
			return nil, err
		}
		return &diag, nil
	}

	// No reason field: the line is a bare rustc diagnostic, as produced
	// when clippy-driver output is piped directly.
	var diag diagnostic
	if err := json.Unmarshal(line, &diag); err != nil {
		return nil, err
	}
	return &diag, nil
}

func addDiagnostic(builder *convert.RunBuilder, diag *diagnostic) {
	// Summary messages ("aborting due to previous error") have no code
	// and no spans; they are not findings.
	if diag.Code == nil || diag.Code.Code == "" || len(diag.Spans) == 0 {
		return
	}

	locations := spanLocations(diag.Spans)
	level := convert.LevelOrDefault(severityLevels, diag.Level)
	if _, known := severityLevels[diag.Level]; !known {
		log.Debugf("unknown clippy level '%s', using '%s'", diag.Level, level)
	}
	builder.AddResult(newRule(diag.Code.Code), level, diag.Message, locations)
}

// spanLocations orders the primary span first; secondary spans become
// additional locations on the same result, preserving input order.
func spanLocations(spans []span) []*sarif.Location {
	var locations []*sarif.Location
	var secondary []*sarif.Location
	for _, s := range spans {
		location, err := spanLocation(s)
		if err != nil {
			log.Debugf("dropping malformed clippy span %s:%d:%d: %v", s.FileName, s.LineStart, s.ColumnStart, err)
			continue
		}
		if s.IsPrimary {
			locations = append(locations, location)
		} else {
			secondary = append(secondary, location)
		}
	}
	return append(locations, secondary...)
}

func spanLocation(s span) (*sarif.Location, error) {
	region, err := convert.NewRegion(
		convert.Pos{Line: s.LineStart, Col: s.ColumnStart},
		convert.Pos{Line: s.LineEnd, Col: s.ColumnEnd},
	)
	if err != nil {
		return nil, err
	}
	return convert.NewLocation(s.FileName, region), nil
}

func newRule(code string) convert.Rule {
	rule := convert.Rule{ID: code, Name: code}
	if lint, ok := strings.CutPrefix(code, "clippy::"); ok {
		rule.HelpURI = fmt.Sprintf("%s#%s", lintIndexURI, lint)
	}
	return rule
}
