// Package fs wraps the file and pipe plumbing that feeds raw tool output
// into the converters and carries SARIF documents back out.
package fs

import (
	"errors"
	"io"
	"os"
)

var ErrNoInput = errors.New("no input file and nothing piped on stdin")

// ReadInput returns the raw bytes to convert: the named file when given,
// otherwise whatever was piped in. A terminal stdin with no filename is an
// error instead of a hang.
func ReadInput(filename string, piped *os.File) ([]byte, error) {
	if filename != "" {
		return os.ReadFile(filename)
	}
	if piped == nil {
		return nil, ErrNoInput
	}
	return io.ReadAll(piped)
}

// PipedFile returns f when it is receiving piped data, nil when it is an
// interactive terminal.
func PipedFile(f *os.File) *os.File {
	info, err := f.Stat()
	if err != nil {
		return nil
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return nil
	}
	return f
}

// OutputWriter opens the named file for writing, or returns fallback when
// no name is given. The returned close function is a no-op for fallback.
func OutputWriter(filename string, fallback io.Writer) (io.Writer, func() error, error) {
	if filename == "" {
		return fallback, func() error { return nil }, nil
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
