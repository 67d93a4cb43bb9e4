package prg

import (
	"fmt"
	"strings"

	"github.com/prgtools/prgconv/internal/util"
)

const (
	// MaxBinarySize is the exact size of an encoded binary program.
	// Shorter programs are zero padded, longer programs cannot be stored.
	MaxBinarySize = 1422
	// MaxSteps is the number of steps that fit into MaxBinarySize.
	MaxSteps = (MaxBinarySize - HeaderSize) / StepSize
)

// Format identifies one of the two program encodings.
type Format int

const (
	FormatUnknown Format = iota
	FormatBinary
	FormatText
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// Extension returns the file extension, without dot, used for the format.
func (f Format) Extension() string {
	switch f {
	case FormatBinary:
		return "prg"
	case FormatText:
		return "txt"
	default:
		return ""
	}
}

// Opposite returns the format a program of format f is converted to.
func (f Format) Opposite() Format {
	switch f {
	case FormatBinary:
		return FormatText
	case FormatText:
		return FormatBinary
	default:
		return FormatUnknown
	}
}

// ParseFormat converts a format name ("binary", "prg", "text", "txt") to a Format.
// "auto" and the empty string map to FormatUnknown, meaning the format should be detected.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatUnknown, nil
	case "binary", "bin", "prg":
		return FormatBinary, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Program is a decoded machine-control program: a header, an ordered list of steps and
// the format it was decoded from.
//
// A Program is not modified after creation. The format is fixed at construction and only
// selects which encoding the program is converted to, see Encode.
type Program struct {
	header Header
	steps  []Step
	format Format
}

// NewProgram creates a program from a header and steps.
//
// format records the provenance of the program. The steps slice is copied.
func NewProgram(header Header, steps []Step, format Format) *Program {
	return &Program{
		header: header,
		steps:  util.CloneSlice(steps, 0),
		format: format,
	}
}

// Header returns the program header.
func (p *Program) Header() Header {
	return p.header
}

// Steps returns a copy of the program steps in execution order.
func (p *Program) Steps() []Step {
	return util.CloneSlice(p.steps, 0)
}

// Len returns the number of steps.
func (p *Program) Len() int {
	return len(p.steps)
}

// Format returns the format the program was decoded from.
func (p *Program) Format() Format {
	return p.format
}

// SentinelIndex returns the index of the first step with quote 0, or -1 if there is none.
//
// Only text programs can hold such a step. Its binary image keeps every step, but reading
// it back stops at that index.
func (p *Program) SentinelIndex() int {
	for i, step := range p.steps {
		if step.IsSentinel() {
			return i
		}
	}

	return -1
}

// EncodeBinary encodes the program to its binary form of exactly MaxBinarySize bytes.
//
// The header is followed by every step in order and the remainder is zero filled, which
// provides the zero quote record that terminates the sequence on the next read.
//
// ErrSizeCeiling is returned, wrapped, when header and steps need more than MaxBinarySize bytes;
// the program is never truncated. Steps are written as they are, a step with quote 0 is
// encoded too and ends the sequence on the next read, see SentinelIndex.
func (p *Program) EncodeBinary() ([]byte, error) {
	size := HeaderSize + len(p.steps)*StepSize
	if size > MaxBinarySize {
		return nil, fmt.Errorf("%w: %d steps need %d bytes, limit is %d bytes (%d steps)",
			ErrSizeCeiling, len(p.steps), size, MaxBinarySize, MaxSteps)
	}

	buf := make([]byte, 0, MaxBinarySize)
	buf = p.header.AppendBytes(buf)
	for _, step := range p.steps {
		buf = step.AppendBytes(buf)
	}

	// the backing array is zeroed, extending to full capacity pads the buffer
	return buf[:MaxBinarySize], nil
}

// Encode encodes the program to the opposite of the format it was decoded from.
// It returns the encoded data and the target format.
func (p *Program) Encode() ([]byte, Format, error) {
	target := p.format.Opposite()
	switch target {
	case FormatBinary:
		data, err := p.EncodeBinary()
		return data, target, err
	case FormatText:
		return []byte(p.EncodeText()), target, nil
	default:
		return nil, target, fmt.Errorf("%w: %d", ErrUnknownFormat, p.format)
	}
}
