package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prgtools/prgconv/logger"
	"github.com/prgtools/prgconv/prg"
)

// Converter converts program files between the binary and the text format.
//
// A conversion decodes the whole input and encodes the output in memory before anything
// is written, so a failed conversion never produces an output file.
type Converter struct {
	log         logger.Logger
	format      prg.Format
	pretty      io.Writer
	lock        bool
	lockDir     string
	lockTimeout time.Duration
}

// Result describes a finished conversion.
type Result struct {
	Input  string     // input file path
	Output string     // written output file path
	From   prg.Format // format of the input
	To     prg.Format // format of the output
	Steps  int        // number of program steps
	Bytes  int        // size of the output in bytes
}

// NewConverter creates a Converter. opts are applied in order; see With* functions.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		log:         logger.GetLogger(),
		lock:        true,
		lockDir:     os.TempDir(),
		lockTimeout: DefaultLockTimeout,
	}

	for _, opt := range opts {
		if err := opt.apply(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Load reads and decodes the program file at path.
//
// The format is detected unless the converter was created with WithFormat.
func (c *Converter) Load(ctx context.Context, path string) (*prg.Program, error) {
	c.log.Info("loading file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := c.format
	if format == prg.FormatUnknown {
		format = prg.DetectFormat(data)
		c.log.Debug("detected input format", "path", path, "format", format, "size", len(data))
	}

	c.log.Info("reading program", "format", format)
	program, err := prg.DecodeAs(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode %s program %s: %w", format, path, err)
	}
	c.log.Debug("decoded program", "path", path, "header", program.Header(), "steps", program.Len())

	return program, nil
}

// Convert converts the program file at inPath to the other format and writes it next to
// the input, see ResolveOutputPath for the output name.
func (c *Converter) Convert(ctx context.Context, inPath string) (*Result, error) {
	program, err := c.Load(ctx, inPath)
	if err != nil {
		return nil, err
	}

	if c.pretty != nil {
		if err := RenderProgram(c.pretty, program); err != nil {
			return nil, fmt.Errorf("pretty print: %w", err)
		}
	}

	data, target, err := program.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode %s program: %w", program.Format().Opposite(), err)
	}

	if idx := program.SentinelIndex(); target == prg.FormatBinary && idx >= 0 {
		c.log.Warn("step with quote 0 ends the binary program, later steps are dropped on the next read",
			"path", inPath, "step", idx, "dropped", program.Len()-idx)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outPath, err := c.writeOutput(ctx, inPath, target, data)
	if err != nil {
		return nil, err
	}

	c.log.Info("wrote output", "path", outPath, "format", target, "bytes", len(data))

	return &Result{
		Input:  inPath,
		Output: outPath,
		From:   program.Format(),
		To:     target,
		Steps:  program.Len(),
		Bytes:  len(data),
	}, nil
}
