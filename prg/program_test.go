package prg

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomSteps(rnd *rand.Rand, n int) []Step {
	steps := make([]Step, n)
	for i := range steps {
		steps[i].Quote = uint16(rnd.Intn(0xFFFF) + 1) //nolint:gosec
		for j := range steps[i].P {
			steps[i].P[j] = uint8(rnd.Intn(256)) //nolint:gosec
		}
		steps[i].L = uint8(rnd.Intn(256)) //nolint:gosec
		steps[i].R = uint8(rnd.Intn(256)) //nolint:gosec
	}

	return steps
}

// binaryImage builds a well-formed binary program image.
func binaryImage(header Header, steps []Step) []byte {
	buf := header.ToBytes()
	for _, step := range steps {
		buf = append(buf, step.ToBytes()...)
	}

	return append(buf, make([]byte, MaxBinarySize-len(buf))...)
}

func TestFormat(t *testing.T) {
	require := require.New(t)

	require.Equal("binary", FormatBinary.String())
	require.Equal("text", FormatText.String())
	require.Equal("unknown", FormatUnknown.String())

	require.Equal("prg", FormatBinary.Extension())
	require.Equal("txt", FormatText.Extension())
	require.Empty(FormatUnknown.Extension())

	require.Equal(FormatText, FormatBinary.Opposite())
	require.Equal(FormatBinary, FormatText.Opposite())
	require.Equal(FormatUnknown, FormatUnknown.Opposite())

	for input, expected := range map[string]Format{
		"":       FormatUnknown,
		"auto":   FormatUnknown,
		"binary": FormatBinary,
		"PRG":    FormatBinary,
		" text ": FormatText,
		"txt":    FormatText,
	} {
		format, err := ParseFormat(input)
		require.NoError(err, input)
		require.Equal(expected, format, input)
	}

	_, err := ParseFormat("json")
	require.ErrorIs(err, ErrUnknownFormat)
}

func TestMaxSteps(t *testing.T) {
	require.Equal(t, 100, MaxSteps)
}

func TestProgram_EncodeBinary(t *testing.T) {
	require := require.New(t)

	header := Header{WaitL: 12, WaitR: 34}
	step := Step{Quote: 5, P: [8]uint8{1, 2, 3, 4, 5, 6, 7, 8}, L: 9, R: 10}

	data, err := NewProgram(header, []Step{step}, FormatText).EncodeBinary()
	require.NoError(err)
	require.Len(data, MaxBinarySize)
	require.Equal(header.ToBytes(), data[:HeaderSize])
	require.Equal(step.ToBytes(), data[HeaderSize:HeaderSize+StepSize])
	require.Equal(make([]byte, MaxBinarySize-HeaderSize-StepSize), data[HeaderSize+StepSize:])
}

func TestProgram_EncodeBinary_Padding(t *testing.T) {
	require := require.New(t)
	rnd := rand.New(rand.NewSource(1)) //nolint:gosec

	for _, n := range []int{0, 1, 2, 50, MaxSteps - 1, MaxSteps} {
		data, err := NewProgram(Header{WaitL: 1}, randomSteps(rnd, n), FormatText).EncodeBinary()
		require.NoError(err, "steps: %d", n)
		require.Len(data, MaxBinarySize, "steps: %d", n)
	}
}

func TestProgram_EncodeBinary_SizeCeiling(t *testing.T) {
	require := require.New(t)
	rnd := rand.New(rand.NewSource(2)) //nolint:gosec

	for _, n := range []int{MaxSteps + 1, MaxSteps + 10, 1000} {
		data, err := NewProgram(Header{}, randomSteps(rnd, n), FormatText).EncodeBinary()
		require.ErrorIs(err, ErrSizeCeiling, "steps: %d", n)
		require.Nil(data)
	}
}

func TestProgram_EncodeBinary_ZeroQuoteStep(t *testing.T) {
	require := require.New(t)

	text := "Wait L | Wait R\n1 | 2\n\nQuote | 1 2 3 4 5 6 7 8 | L R\n" + TextStepRule + "\n" +
		"    5 | 1 1 1 1 1 1 1 1 | 0 0\n" +
		"    0 | 2 2 2 2 2 2 2 2 | 1 0\n" +
		"    7 | 3 3 3 3 3 3 3 3 | 0 1\n"
	program, err := Decode([]byte(text))
	require.NoError(err)
	require.Equal(3, program.Len())
	require.Equal(1, program.SentinelIndex())

	data, err := program.EncodeBinary()
	require.NoError(err)
	require.Len(data, MaxBinarySize)

	// every step is written, including the zero quote one
	for i, step := range program.Steps() {
		off := HeaderSize + i*StepSize
		require.Equal(step.ToBytes(), data[off:off+StepSize], "step %d", i)
	}

	// reading the image back stops at the zero quote
	again, err := DecodeAs(data, FormatBinary)
	require.NoError(err)
	require.Equal(1, again.Len())
	require.Equal(-1, again.SentinelIndex())
}

func TestProgram_BinaryRoundTrip(t *testing.T) {
	require := require.New(t)
	rnd := rand.New(rand.NewSource(3)) //nolint:gosec

	for _, n := range []int{0, 1, 7, 64, MaxSteps} {
		header := Header{WaitL: uint16(rnd.Intn(0x10000)), WaitR: uint16(rnd.Intn(0x10000))} //nolint:gosec
		steps := randomSteps(rnd, n)
		image := binaryImage(header, steps)

		program, err := DecodeAs(image, FormatBinary)
		require.NoError(err)
		require.Equal(FormatBinary, program.Format())
		require.Equal(header, program.Header())
		require.Equal(steps, program.Steps())

		encoded, err := program.EncodeBinary()
		require.NoError(err)
		require.Equal(image, encoded, "steps: %d", n)

		// binary -> text -> binary reproduces the image
		textProgram, err := DecodeAs([]byte(program.EncodeText()), FormatText)
		require.NoError(err)
		require.Equal(FormatText, textProgram.Format())

		reencoded, err := textProgram.EncodeBinary()
		require.NoError(err)
		require.Equal(image, reencoded, "steps: %d", n)
	}
}

func TestProgram_TextRoundTrip(t *testing.T) {
	require := require.New(t)

	input := "Wait L | Wait R\n" +
		"12|34\n" +
		"\n" +
		"Quote | 1 2 3 4 5 6 7 8 | L R\n" +
		"---\n" +
		"5|1 2 3 4 5 6 7 8|9 10\n" +
		"  65535 |   255 0 0 0 0 0 0 1 | 3   4\n"

	program, err := Decode([]byte(input))
	require.NoError(err)
	require.Equal(FormatText, program.Format())
	require.Equal(Header{WaitL: 12, WaitR: 34}, program.Header())
	require.Equal([]Step{
		{Quote: 5, P: [8]uint8{1, 2, 3, 4, 5, 6, 7, 8}, L: 9, R: 10},
		{Quote: 65535, P: [8]uint8{255, 0, 0, 0, 0, 0, 0, 1}, L: 3, R: 4},
	}, program.Steps())

	reparsed, err := Decode([]byte(program.EncodeText()))
	require.NoError(err)
	require.Equal(program.Header(), reparsed.Header())
	require.Equal(program.Steps(), reparsed.Steps())
}

func TestProgram_EncodeText(t *testing.T) {
	require := require.New(t)

	program := NewProgram(Header{WaitL: 12, WaitR: 34}, []Step{
		{Quote: 5, P: [8]uint8{1, 2, 3, 4, 5, 6, 7, 8}, L: 9, R: 10},
		{Quote: 1200},
	}, FormatBinary)

	expected := "Wait L | Wait R\n" +
		"  12   |  34   \n" +
		"\n" +
		"Quote | 1 2 3 4 5 6 7 8 | L R\n" +
		"-----------------------------\n" +
		"    5 | 1 2 3 4 5 6 7 8 | 9 10\n" +
		" 1200 | 0 0 0 0 0 0 0 0 | 0 0\n"
	require.Equal(expected, program.EncodeText())

	empty := NewProgram(Header{}, nil, FormatBinary).EncodeText()
	require.Equal(5, strings.Count(empty, "\n"))

	reparsed, err := DecodeAs([]byte(empty), FormatText)
	require.NoError(err)
	require.Equal(0, reparsed.Len())
}

func TestProgram_Encode(t *testing.T) {
	require := require.New(t)

	steps := []Step{{Quote: 500, L: 1}}

	fromBinary := NewProgram(Header{WaitL: 1}, steps, FormatBinary)
	data, format, err := fromBinary.Encode()
	require.NoError(err)
	require.Equal(FormatText, format)
	require.Equal(fromBinary.EncodeText(), string(data))

	fromText := NewProgram(Header{WaitL: 1}, steps, FormatText)
	data, format, err = fromText.Encode()
	require.NoError(err)
	require.Equal(FormatBinary, format)
	require.Len(data, MaxBinarySize)

	_, _, err = NewProgram(Header{}, steps, FormatUnknown).Encode()
	require.ErrorIs(err, ErrUnknownFormat)
}

func TestProgram_Immutable(t *testing.T) {
	require := require.New(t)

	steps := []Step{{Quote: 1}, {Quote: 2}}
	program := NewProgram(Header{}, steps, FormatText)

	steps[0].Quote = 99
	require.Equal(uint16(1), program.Steps()[0].Quote)

	got := program.Steps()
	got[1].Quote = 99
	require.Equal(uint16(2), program.Steps()[1].Quote)
}

func TestDetectFormat(t *testing.T) {
	require := require.New(t)

	text := NewProgram(Header{WaitL: 1}, []Step{{Quote: 500}}, FormatBinary).EncodeText()
	require.Equal(FormatText, DetectFormat([]byte(text)))
	require.Equal(FormatText, DetectFormat(append([]byte{0xEF, 0xBB, 0xBF}, text...)))
	require.Equal(FormatText, DetectFormat(nil))

	// quote 500 is 0xF4 0x01, not valid UTF-8
	image := binaryImage(Header{WaitL: 1}, []Step{{Quote: 500}})
	require.Equal(FormatBinary, DetectFormat(image))

	program, err := Decode(image)
	require.NoError(err)
	require.Equal(FormatBinary, program.Format())
	require.Equal([]Step{{Quote: 500}}, program.Steps())
}

func TestDetectFormat_ASCIIBinary(t *testing.T) {
	require := require.New(t)

	// every byte below 0x80 forms valid UTF-8, so the image is classified as text
	image := binaryImage(Header{WaitL: 12, WaitR: 34}, []Step{{Quote: 5, L: 1}})
	require.Equal(FormatText, DetectFormat(image))

	_, err := Decode(image)
	var structErr *StructuralError
	require.ErrorAs(err, &structErr)

	program, err := DecodeAs(image, FormatBinary)
	require.NoError(err)
	require.Equal(Header{WaitL: 12, WaitR: 34}, program.Header())
	require.Equal([]Step{{Quote: 5, L: 1}}, program.Steps())
}

func TestDecode_BinaryStructural(t *testing.T) {
	require := require.New(t)

	_, err := DecodeAs([]byte{1, 0, 0}, FormatBinary)
	var structErr *StructuralError
	require.ErrorAs(err, &structErr)

	// header only, no step records
	program, err := DecodeAs(Header{WaitL: 3}.ToBytes(), FormatBinary)
	require.NoError(err)
	require.Equal(0, program.Len())
	require.Equal(Header{WaitL: 3}, program.Header())

	_, err = DecodeAs([]byte{}, Format(42))
	require.ErrorIs(err, ErrUnknownFormat)
}

func TestDecode_TextStructural(t *testing.T) {
	tests := []struct {
		description  string
		input        string
		expectedLine int
	}{
		{description: "empty", input: "", expectedLine: 1},
		{description: "white space only", input: " \n\n\t\n", expectedLine: 1},
		{description: "caption only", input: "Wait L | Wait R\n", expectedLine: 1},
		{description: "no step captions", input: "Wait L | Wait R\n1|2\n", expectedLine: 2},
		{description: "missing rule line", input: "Wait L | Wait R\n1|2\n\nQuote | 1 2 3 4 5 6 7 8 | L R\n", expectedLine: 4},
		{description: "header without separator", input: "Wait L | Wait R\n12\n\nQ\n--\n", expectedLine: 1},
	}

	require := require.New(t)
	for i, test := range tests {
		t.Logf("Test #%d: %s", i, test.description)

		_, err := DecodeAs([]byte(test.input), FormatText)
		var structErr *StructuralError
		require.ErrorAs(err, &structErr)
		require.Equal(test.expectedLine, structErr.Line)
	}
}

func TestDecode_TextParseError(t *testing.T) {
	require := require.New(t)

	input := "Wait L | Wait R\n1|70000\n\nQ\n--\n"
	_, err := Decode([]byte(input))
	var parseErr *ParseError
	require.ErrorAs(err, &parseErr)
	require.Equal("wait_r", parseErr.Field)
	require.Equal(1, parseErr.Line)

	input = "Wait L | Wait R\n1|2\n\nQ\n--\n 5 | 1 2 3 4 5 6 7 8 | 9 10\n 6 | 1 2 3 4 5 6 7 8 | 9 256\n"
	_, err = Decode([]byte(input))
	require.ErrorAs(err, &parseErr)
	require.Equal("r", parseErr.Field)
	require.Equal(6, parseErr.Line)
}

func TestDecode_TextWindowsLineEndings(t *testing.T) {
	require := require.New(t)

	program := NewProgram(Header{WaitL: 12, WaitR: 34}, []Step{{Quote: 5, L: 9}, {Quote: 6, R: 1}}, FormatBinary)
	text := strings.ReplaceAll(program.EncodeText(), "\n", "\r\n")
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, text...)

	decoded, err := Decode(withBOM)
	require.NoError(err)
	require.Equal(program.Header(), decoded.Header())
	require.Equal(program.Steps(), decoded.Steps())
}

func TestDecode_TextLeadingBlankLines(t *testing.T) {
	require := require.New(t)

	program := NewProgram(Header{WaitL: 7}, []Step{{Quote: 1}}, FormatBinary)
	decoded, err := Decode([]byte("\n\n  " + program.EncodeText() + "\n\n"))
	require.NoError(err)
	require.Equal(program.Header(), decoded.Header())
	require.Equal(program.Steps(), decoded.Steps())
}

func TestDecode_BinaryTrailingGarbage(t *testing.T) {
	require := require.New(t)

	image := binaryImage(Header{WaitL: 1}, []Step{{Quote: 500}, {Quote: 501}})
	// a record after the sentinel is ignored
	copy(image[HeaderSize+3*StepSize:], Step{Quote: 502}.ToBytes())
	image = append(image, bytes.Repeat([]byte{0xFF}, 7)...)

	program, err := Decode(image)
	require.NoError(err)
	require.Equal([]Step{{Quote: 500}, {Quote: 501}}, program.Steps())
}
