// Package convert contains the shared machinery for turning native lint tool
// diagnostics into SARIF reports: the Converter capability, severity and
// location mapping helpers, and the run assembler.
package convert

import (
	"errors"
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

var ErrParse = errors.New("parse error")
var ErrLocation = errors.New("location error")
var ErrSchema = errors.New("schema error")

// Converter is the capability shared by every supported tool: one call
// consumes a complete native output document and produces a single-run
// SARIF report. Implementations hold no mutable state and are safe for
// concurrent use.
type Converter interface {
	Tool() string
	Convert(raw []byte) (*sarif.Report, error)
}

// Detector is implemented by converters that can recognize their own
// tool's output. Detection is a cheap structural sniff, not a full parse.
type Detector interface {
	Detect(raw []byte) bool
}

// DetectConverter returns the first converter that recognizes the input,
// in wiring order.
func DetectConverter(raw []byte, converters []Converter) (Converter, error) {
	for _, converter := range converters {
		detector, ok := converter.(Detector)
		if !ok {
			continue
		}
		if detector.Detect(raw) {
			return converter, nil
		}
	}
	return nil, fmt.Errorf("%w: input does not match any supported tool format", ErrParse)
}

// FromJSON parses a SARIF log document.
func FromJSON(raw []byte) (*sarif.Report, error) {
	report, err := sarif.FromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return report, nil
}

// WriteJSON serializes a report to w, optionally indented.
func WriteJSON(report *sarif.Report, w io.Writer, pretty bool) error {
	if pretty {
		return report.PrettyWrite(w)
	}
	return report.Write(w)
}
