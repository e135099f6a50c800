// Package clangtidy converts clang-tidy's line-oriented text output into
// SARIF. Diagnostic lines look like
//
//	path/to/foo.cpp:42:3: warning: unused variable 'x' [clang-diagnostic-unused-variable]
//
// Everything else (code excerpts, caret markers, "N warnings generated.")
// is context and is skipped.
package clangtidy

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/jamacku/sarif-go/internal/log"
	"github.com/jamacku/sarif-go/pkg/convert"
)

const ToolName = "clang-tidy"
const InformationURI = "https://clang.llvm.org/extra/clang-tidy/"

var severityLevels = map[string]string{
	"fatal error": convert.LevelError,
	"error":       convert.LevelError,
	"warning":     convert.LevelWarning,
	"remark":      convert.LevelNote,
	"note":        convert.LevelNote,
}

// diagnosticPattern captures path, line, column, severity, message and the
// bracketed check list. The lazy path match keeps Windows drive colons out
// of the line number group.
var diagnosticPattern = regexp.MustCompile(
	`^(.+?):(\d+):(\d+): (fatal error|error|warning|remark|note): (.+?)(?: \[([^\[\]]+)\])?$`,
)

type Converter struct{}

func NewConverter() *Converter {
	return &Converter{}
}

func (c *Converter) Tool() string {
	return ToolName
}

// Detect recognizes clang-tidy output when any line carries a diagnostic;
// JSON documents never do.
func (c *Converter) Detect(raw []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if diagnosticPattern.Match(bytes.TrimRight(scanner.Bytes(), "\r")) {
			return true
		}
	}
	return false
}

func (c *Converter) Convert(raw []byte) (*sarif.Report, error) {
	builder := convert.NewRunBuilder(ToolName, convert.WithInformationURI(InformationURI))

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	matched := 0
	nonBlank := 0
	for scanner.Scan() {
		line := bytes.TrimRight(scanner.Bytes(), "\r\n")
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		nonBlank++
		groups := diagnosticPattern.FindSubmatch(line)
		if groups == nil {
			continue
		}
		matched++
		addDiagnostic(builder, groups)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", convert.ErrParse, err)
	}
	// Individual context lines are skipped, but an input where nothing
	// parses at all is not clang-tidy output.
	if nonBlank > 0 && matched == 0 {
		return nil, fmt.Errorf("%w: no clang-tidy diagnostics found in %d lines", convert.ErrParse, nonBlank)
	}

	return builder.Build()
}

func addDiagnostic(builder *convert.RunBuilder, groups [][]byte) {
	path := string(groups[1])
	severity := string(groups[4])
	message := string(groups[5])
	checks := string(groups[6])

	// Notes and compiler chatter carry no check name; they expand on the
	// preceding diagnostic rather than reporting a new one.
	if checks == "" {
		log.Debugf("skipping clang-tidy %s without a check name at %s", severity, path)
		return
	}

	// Group values come from \d+ captures.
	lineNumber, _ := strconv.Atoi(string(groups[2]))
	column, _ := strconv.Atoi(string(groups[3]))

	var locations []*sarif.Location
	region, err := convert.NewRegion(convert.Pos{Line: lineNumber, Col: column}, convert.Pos{})
	if err != nil {
		log.Debugf("dropping malformed clang-tidy location %s:%d:%d: %v", path, lineNumber, column, err)
	} else {
		locations = []*sarif.Location{convert.NewLocation(path, region)}
	}

	level := convert.LevelOrDefault(severityLevels, severity)
	builder.AddResult(convert.Rule{ID: checks, Name: checks}, level, message, locations)
}
