package cue

import (
	"errors"
	"fmt"
)

// ErrFormat matches every FormatError through errors.Is.
var ErrFormat = errors.New("malformed cuesheet")

// FormatError reports a line that cannot be parsed.
//
// The only line that fails parsing is a TRACK command whose track number
// is missing or not an integer. Everything else degrades gracefully.
type FormatError struct {
	Line int    // 1-based line number
	Text string // the offending line, trimmed
	Err  error  // underlying strconv error, if any
}

// Error returns the error message.
func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cue: line %d %q: invalid track number: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("cue: line %d %q: missing track number", e.Line, e.Text)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
