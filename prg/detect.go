package prg

import (
	"fmt"
	"unicode/utf8"
)

// DetectFormat classifies data as text if it is valid UTF-8, otherwise as binary.
//
// A binary program whose bytes all happen to form valid UTF-8 (for example one whose
// values are all below 0x80) is classified as text. Use DecodeAs to force a format.
func DetectFormat(data []byte) Format {
	if utf8.Valid(data) {
		return FormatText
	}

	return FormatBinary
}

// Decode detects the format of data with DetectFormat and decodes the program.
func Decode(data []byte) (*Program, error) {
	return DecodeAs(data, DetectFormat(data))
}

// DecodeAs decodes a program from data in the given format.
// FormatUnknown detects the format like Decode.
//
// The returned program records format as its provenance.
func DecodeAs(data []byte, format Format) (*Program, error) {
	switch format {
	case FormatUnknown:
		return Decode(data)
	case FormatText:
		return decodeText(data)
	case FormatBinary:
		return decodeBinary(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
}

// decodeBinary decodes the header from the first HeaderSize bytes and a sentinel
// terminated step sequence from the rest.
func decodeBinary(data []byte) (*Program, error) {
	header, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}

	return &Program{
		header: header,
		steps:  DecodeSteps(data[HeaderSize:]),
		format: FormatBinary,
	}, nil
}
