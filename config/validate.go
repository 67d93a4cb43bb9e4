package config

import (
	"fmt"

	"github.com/prgtools/prgconv/logger"
	"github.com/prgtools/prgconv/prg"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if _, err := prg.ParseFormat(c.Convert.Format); err != nil {
		return fmt.Errorf("convert.format: %w", err)
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	switch c.Logging.Format {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return fmt.Errorf("logging.format: unsupported format %q, expect %q or %q",
			c.Logging.Format, logger.FormatConsole, logger.FormatJSON)
	}

	return nil
}

// InputFormat returns the configured input format, prg.FormatUnknown meaning auto detection.
func (c *Config) InputFormat() prg.Format {
	format, _ := prg.ParseFormat(c.Convert.Format)
	return format
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() logger.Level {
	level, _ := logger.ParseLevel(c.Logging.Level)
	return level
}
