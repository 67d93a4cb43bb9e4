package prg

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/prgtools/prgconv/internal/util"
)

const (
	// StepSize is the size of one binary step record in bytes.
	StepSize = 14
	// Actuators is the number of actuator position fields of a step.
	Actuators = 8
	// GroupOffsets is the number of bank offset fields of a step.
	GroupOffsets = 2

	stepActuatorOffset = 4
	stepLOffset        = 12
	stepROffset        = 13
)

// Step is one scheduled actuation event.
//
// Binary layout (14 bytes):
//
//	offset 0..2    Quote, little-endian uint16
//	offset 2..4    reserved, zero
//	offset 4..12   P[0]..P[7], one byte each
//	offset 12      L
//	offset 13      R
//
// A Quote of 0 marks the end of a binary step sequence and is never a stored step.
type Step struct {
	Quote uint16           // position/progress value
	P     [Actuators]uint8 // actuator positions p1..p8
	L     uint8            // left bank offset
	R     uint8            // right bank offset
}

// IsSentinel reports whether the step is the end-of-sequence marker.
func (s Step) IsSentinel() bool {
	return s.Quote == 0
}

// DecodeStep decodes one step record from the first StepSize bytes of data.
//
// The reserved bytes are ignored. A *StructuralError is returned if data is shorter than StepSize.
func DecodeStep(data []byte) (Step, error) {
	if len(data) < StepSize {
		return Step{}, newStructuralError("step record, need "+strconv.Itoa(StepSize)+" bytes", -1)
	}

	step := Step{
		Quote: binary.LittleEndian.Uint16(data),
		L:     data[stepLOffset],
		R:     data[stepROffset],
	}
	copy(step.P[:], data[stepActuatorOffset:stepLOffset])

	return step, nil
}

// DecodeSteps decodes consecutive step records from data, starting at offset 0.
//
// Decoding stops at the first record whose quote is 0; that record and everything after it is discarded.
// A trailing chunk shorter than StepSize also ends the sequence without error.
func DecodeSteps(data []byte) []Step {
	steps := make([]Step, 0, len(data)/StepSize)
	for pos := 0; pos+StepSize <= len(data); pos += StepSize {
		step, _ := DecodeStep(data[pos : pos+StepSize])
		if step.IsSentinel() {
			break
		}
		steps = append(steps, step)
	}

	return steps
}

// ToBytes serializes the step into its 14-byte binary representation.
func (s Step) ToBytes() []byte {
	return s.AppendBytes(make([]byte, 0, StepSize))
}

// AppendBytes appends the 14-byte binary representation of the step to dst.
func (s Step) AppendBytes(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint16(dst, s.Quote)
	dst = append(dst, 0, 0)
	dst = append(dst, s.P[:]...)
	dst = append(dst, s.L, s.R)

	return dst
}

// ParseStep parses a step text line.
//
// The grammar is three '|' separated groups: the quote, eight white space separated
// actuator values and two white space separated bank offsets, e.g.
//
//	120 | 1 2 3 4 5 6 7 8 | 9 10
//
// A missing group or a wrong number of values yields a *StructuralError, a value that
// does not fit the field width yields a *ParseError.
func ParseStep(line string) (Step, error) {
	groups := util.SplitTrim(line, "|")
	switch {
	case len(groups) < 2:
		return Step{}, newStructuralError("actuator group, expect '|' after quote", -1)
	case len(groups) < 3:
		return Step{}, newStructuralError("offset group, expect '|' after actuators", -1)
	case len(groups) > 3:
		return Step{}, newStructuralError("end of step, got extra '|' group", -1)
	}

	var step Step
	var err error

	step.Quote, err = parseUint16("quote", groups[0])
	if err != nil {
		return Step{}, err
	}

	actuators := strings.Fields(groups[1])
	if len(actuators) != Actuators {
		return Step{}, newStructuralError(
			"actuator values, expect "+strconv.Itoa(Actuators)+" got "+strconv.Itoa(len(actuators)), -1)
	}
	for i, v := range actuators {
		step.P[i], err = parseUint8("p"+strconv.Itoa(i+1), v)
		if err != nil {
			return Step{}, err
		}
	}

	offsets := strings.Fields(groups[2])
	if len(offsets) != GroupOffsets {
		return Step{}, newStructuralError(
			"offset values, expect "+strconv.Itoa(GroupOffsets)+" got "+strconv.Itoa(len(offsets)), -1)
	}
	if step.L, err = parseUint8("l", offsets[0]); err != nil {
		return Step{}, err
	}
	if step.R, err = parseUint8("r", offsets[1]); err != nil {
		return Step{}, err
	}

	return step, nil
}

// ParseSteps parses every line as a step, in order.
//
// The text form has no sentinel, every line is a step. firstLine is the 0-based line number
// of lines[0] in the source text and is used for error reporting only.
func ParseSteps(lines []string, firstLine int) ([]Step, error) {
	steps := make([]Step, 0, len(lines))
	for i, line := range lines {
		step, err := ParseStep(line)
		if err != nil {
			return nil, withLine(err, firstLine+i)
		}
		steps = append(steps, step)
	}

	return steps, nil
}

// ToText renders the step text line: the quote right-aligned in 5 columns, then
// the actuator values and the bank offsets, each group separated by " | ".
func (s Step) ToText() string {
	var sb strings.Builder
	sb.Grow(48)

	quote := strconv.FormatUint(uint64(s.Quote), 10)
	if len(quote) < 5 {
		sb.WriteString(strings.Repeat(" ", 5-len(quote)))
	}
	sb.WriteString(quote)
	sb.WriteString(" |")

	// reuse a buffer for strconv.AppendUint to avoid allocations
	var buf [3]byte
	for _, p := range s.P {
		sb.WriteByte(' ')
		sb.Write(strconv.AppendUint(buf[:0], uint64(p), 10))
	}
	sb.WriteString(" | ")
	sb.Write(strconv.AppendUint(buf[:0], uint64(s.L), 10))
	sb.WriteByte(' ')
	sb.Write(strconv.AppendUint(buf[:0], uint64(s.R), 10))

	return sb.String()
}
