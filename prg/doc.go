// Package prg provides the data structures and codecs for machine-control programs,
// a header with two timing fields followed by an ordered list of actuator steps.
//
// A program has two encodings:
//
//   - Binary: a fixed 1422-byte image, the 22-byte header followed by 14-byte step records.
//     The step sequence ends at the first record with quote 0, the rest of the image is zero.
//   - Text: a human readable form with one line for the header and one line per step.
//
// Binary to text to binary reproduces the original image. Text to binary to text reproduces
// every value, white space may differ.
//
// Key Features:
//   - Format Detection: Decode classifies input as text when it is valid UTF-8 and as binary otherwise.
//   - Size Ceiling: EncodeBinary refuses programs with more than MaxSteps steps instead of truncating them.
//   - Typed Errors: missing lines or byte ranges yield *StructuralError, bad values yield *ParseError.
//
// Usage Example:
//
//	data, _ := os.ReadFile("program.prg")
//
//	// Decode either encoding
//	program, err := prg.Decode(data)
//	if err != nil {
//	    // Handle error
//	}
//
//	// Convert to the other encoding
//	out, format, err := program.Encode()
//	if err != nil {
//	    // Handle error
//	}
//	_ = os.WriteFile("program."+format.Extension(), out, 0o644)
package prg
