package convert

import (
	"errors"
	"io"
	"time"

	"github.com/prgtools/prgconv/logger"
	"github.com/prgtools/prgconv/prg"
)

// DefaultLockTimeout is how long Convert waits for the output directory lock.
const DefaultLockTimeout = 10 * time.Second

// Option is a functional option for configuring a Converter.
type Option interface {
	apply(*Converter) error
}

type optFunc func(*Converter) error

func (f optFunc) apply(c *Converter) error { return f(c) }

// WithLogger sets the logger. Defaults to logger.GetLogger().
func WithLogger(l logger.Logger) Option {
	return optFunc(func(c *Converter) error {
		if l == nil {
			return errors.New("convert: logger is nil")
		}
		c.log = l

		return nil
	})
}

// WithFormat forces the input format. prg.FormatUnknown, the default, detects it.
func WithFormat(format prg.Format) Option {
	return optFunc(func(c *Converter) error {
		switch format {
		case prg.FormatUnknown, prg.FormatBinary, prg.FormatText:
			c.format = format
			return nil
		default:
			return prg.ErrUnknownFormat
		}
	})
}

// WithPrettyPrint sets the writer that receives the console dump of every decoded program.
// A nil writer, the default, disables the dump.
func WithPrettyPrint(w io.Writer) Option {
	return optFunc(func(c *Converter) error {
		c.pretty = w
		return nil
	})
}

// WithLock enables or disables the advisory output directory lock. Enabled by default.
func WithLock(enabled bool) Option {
	return optFunc(func(c *Converter) error {
		c.lock = enabled
		return nil
	})
}

// WithLockDir sets the directory holding lock files. Defaults to os.TempDir().
func WithLockDir(dir string) Option {
	return optFunc(func(c *Converter) error {
		if dir == "" {
			return errors.New("convert: lock directory is empty")
		}
		c.lockDir = dir

		return nil
	})
}

// WithLockTimeout sets how long to wait for the output directory lock.
func WithLockTimeout(d time.Duration) Option {
	return optFunc(func(c *Converter) error {
		if d <= 0 {
			return errors.New("convert: lock timeout must be positive")
		}
		c.lockTimeout = d

		return nil
	})
}
