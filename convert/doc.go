// Package convert converts program files between the binary and the text format.
//
// It wraps the prg codec with file handling: reading the input, choosing a free
// output name next to it, writing the output atomically and printing a console
// dump of the decoded program.
//
// Usage Example:
//
//	conv, err := convert.NewConverter(
//	    convert.WithPrettyPrint(os.Stdout),
//	    convert.WithLogger(logger.NewSlog(logger.InfoLevel, false)),
//	)
//	if err != nil {
//	    // Handle error
//	}
//	result, err := conv.Convert(ctx, "program.prg")
//	if err != nil {
//	    // Handle error
//	}
//	fmt.Println(result.Output) // program.txt, or program_0.txt if that exists
package convert
