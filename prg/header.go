package prg

import (
	"encoding/binary"
	"strconv"

	"github.com/prgtools/prgconv/internal/util"
)

const (
	// HeaderSize is the size of the binary program header in bytes.
	HeaderSize = 22
	// HeaderMarker is the fixed value of the first header byte.
	HeaderMarker = 1

	headerWaitLOffset = 10
	headerWaitROffset = 12
	headerTextWidth   = 7
)

// Header holds the program timing fields.
//
// Binary layout (22 bytes):
//
//	offset 0       marker, always 1
//	offset 1..10   reserved, zero
//	offset 10..12  WaitL, little-endian uint16
//	offset 12..14  WaitR, little-endian uint16
//	offset 14..22  reserved, zero
type Header struct {
	WaitL uint16 // delay of the left actuator bank
	WaitR uint16 // delay of the right actuator bank
}

// DecodeHeader decodes a header from the first HeaderSize bytes of data.
//
// Only the wait fields are read, the marker and reserved bytes are ignored.
// A *StructuralError is returned if data is shorter than HeaderSize.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, newStructuralError("program header, need "+strconv.Itoa(HeaderSize)+" bytes", -1)
	}

	return Header{
		WaitL: binary.LittleEndian.Uint16(data[headerWaitLOffset:]),
		WaitR: binary.LittleEndian.Uint16(data[headerWaitROffset:]),
	}, nil
}

// ToBytes serializes the header into its 22-byte binary representation.
func (h Header) ToBytes() []byte {
	return h.AppendBytes(make([]byte, 0, HeaderSize))
}

// AppendBytes appends the 22-byte binary representation of the header to dst.
func (h Header) AppendBytes(dst []byte) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, HeaderSize)...)
	buf := dst[start:]

	buf[0] = HeaderMarker
	binary.LittleEndian.PutUint16(buf[headerWaitLOffset:], h.WaitL)
	binary.LittleEndian.PutUint16(buf[headerWaitROffset:], h.WaitR)

	return dst
}

// ParseHeader parses the header text line, two '|' separated decimal values in the order WaitL, WaitR.
func ParseHeader(line string) (Header, error) {
	fields := util.SplitTrim(line, "|")
	if len(fields) < 2 {
		return Header{}, newStructuralError("wait_r value", -1)
	}

	waitL, err := parseUint16("wait_l", fields[0])
	if err != nil {
		return Header{}, err
	}

	waitR, err := parseUint16("wait_r", fields[1])
	if err != nil {
		return Header{}, err
	}

	return Header{WaitL: waitL, WaitR: waitR}, nil
}

// ToText renders the header text line: both values centered in 7 columns and separated by '|'.
func (h Header) ToText() string {
	return util.CenterPad(strconv.FormatUint(uint64(h.WaitL), 10), headerTextWidth) +
		"|" +
		util.CenterPad(strconv.FormatUint(uint64(h.WaitR), 10), headerTextWidth)
}

func parseUint16(field string, s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, &ParseError{Field: field, Value: s, Line: -1, Err: err}
	}

	return uint16(v), nil
}

func parseUint8(field string, s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, &ParseError{Field: field, Value: s, Line: -1, Err: err}
	}

	return uint8(v), nil
}
