// Command prgconv converts controller programs between the binary storage image and the
// editable text form.
//
// Usage:
//
//	prgconv [flags] <in_file>
//	prgconv inspect <in_file>
//	prgconv config sample [path]
//
// The input format is detected from the content, the output is written next to the input
// with the extension of the other format.
package main
