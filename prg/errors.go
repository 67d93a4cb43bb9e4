package prg

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeCeiling indicates that an encoded binary program does not fit into MaxBinarySize bytes.
	// The storage medium has a fixed size, the encoder never truncates.
	ErrSizeCeiling = errors.New("program exceeds binary size ceiling")

	// ErrUnknownFormat indicates that a Format value is neither FormatBinary nor FormatText.
	ErrUnknownFormat = errors.New("unknown program format")
)

// StructuralError records a required line, field group or byte range that is absent.
type StructuralError struct {
	What string // what was missing, e.g. "header line" or "step record"
	Line int    // 0-based text line, -1 if not applicable
}

func newStructuralError(what string, line int) *StructuralError {
	return &StructuralError{What: what, Line: line}
}

func (e *StructuralError) Error() string {
	if e.Line < 0 {
		return "missing " + e.What
	}

	return fmt.Sprintf("line %d: missing %s", e.Line, e.What)
}

// ParseError records a field value that is not a valid unsigned integer of the field's width.
type ParseError struct {
	Field string // field name, e.g. "wait_l", "quote", "p3"
	Value string // offending text
	Line  int    // 0-based text line, -1 if not applicable
	Err   error  // underlying strconv error
}

func (e *ParseError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Field, e.Err)
	}

	return fmt.Sprintf("line %d: invalid value %q for %s: %v", e.Line, e.Value, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// withLine returns err with its line number set, if err is one of the typed text errors.
func withLine(err error, line int) error {
	var structErr *StructuralError
	if errors.As(err, &structErr) {
		return &StructuralError{What: structErr.What, Line: line}
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return &ParseError{Field: parseErr.Field, Value: parseErr.Value, Line: line, Err: parseErr.Err}
	}

	return err
}
