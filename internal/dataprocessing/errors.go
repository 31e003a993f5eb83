package dataprocessing

import (
	"fmt"
	"strings"
)

// MalformedInputError reports input that is not parseable tabular text or
// is missing required columns. No partial dataset is produced.
type MalformedInputError struct {
	Reason  string
	Missing []string
	Err     error
}

func (e *MalformedInputError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("malformed input: %s: %s", e.Reason, strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed input: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed input: %s", e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// FieldFormatError reports a specific field in a specific row failing its
// expected pattern. Row is 1-based counting the header row, so the first
// data row is row 2. The whole batch aborts rather than dropping the row;
// aggregate statistics over a silently thinned dataset would mislead.
type FieldFormatError struct {
	Field string
	Row   int
	Value string
	Err   error
}

func (e *FieldFormatError) Error() string {
	return fmt.Sprintf("row %d: field %q: invalid value %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *FieldFormatError) Unwrap() error {
	return e.Err
}
