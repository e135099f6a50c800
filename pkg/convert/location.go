package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

// Pos is a 1-based line/column position. A Col of 0 means the column is
// unknown and is omitted from the produced region.
type Pos struct {
	Line int
	Col  int
}

// FromZeroBased normalizes a 0-based line or column to the 1-based
// convention SARIF requires.
func FromZeroBased(n int) int {
	return n + 1
}

// NewRegion builds a region from a start position and an optional end
// position. A zero-value end means the source supplied only a single point.
// An end equal to the start collapses to a single-point region. Malformed
// positions are rejected with ErrLocation; the caller decides whether to
// drop the location or the whole result.
func NewRegion(start Pos, end Pos) (*sarif.Region, error) {
	if start.Line < 1 {
		return nil, fmt.Errorf("%w: start line %d is not 1-based", ErrLocation, start.Line)
	}
	if start.Col < 0 {
		return nil, fmt.Errorf("%w: negative start column %d", ErrLocation, start.Col)
	}
	region := &sarif.Region{StartLine: &start.Line}
	if start.Col > 0 {
		region.StartColumn = &start.Col
	}
	if end == (Pos{}) || end == start {
		return region, nil
	}
	if end.Line < start.Line || (end.Line == start.Line && end.Col > 0 && start.Col > 0 && end.Col < start.Col) {
		return nil, fmt.Errorf("%w: end %d:%d before start %d:%d", ErrLocation, end.Line, end.Col, start.Line, start.Col)
	}
	region.EndLine = &end.Line
	if end.Col > 0 {
		region.EndColumn = &end.Col
	}
	return region, nil
}

// ResolveOffset converts a byte offset into a position by scanning the
// artifact's text. Used when a source format addresses findings by offset
// only; without the text the caller omits the location instead.
func ResolveOffset(text []byte, offset int) (Pos, error) {
	if offset < 0 || offset > len(text) {
		return Pos{}, fmt.Errorf("%w: offset %d out of range for %d bytes", ErrLocation, offset, len(text))
	}
	head := text[:offset]
	line := bytes.Count(head, []byte{'\n'}) + 1
	col := offset - bytes.LastIndexByte(head, '\n')
	return Pos{Line: line, Col: col}, nil
}

// NewLocation wraps a region in a physical location for the given artifact.
// Paths are normalized to forward slashes for portability, including
// Windows separators from tool output produced on another platform.
func NewLocation(uri string, region *sarif.Region) *sarif.Location {
	slashed := strings.ReplaceAll(filepath.ToSlash(uri), `\`, "/")
	return &sarif.Location{
		PhysicalLocation: &sarif.PhysicalLocation{
			ArtifactLocation: &sarif.ArtifactLocation{URI: &slashed},
			Region:           region,
		},
	}
}
