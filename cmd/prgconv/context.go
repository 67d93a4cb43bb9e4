package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prgtools/prgconv/config"
	"github.com/prgtools/prgconv/logger"
	"github.com/prgtools/prgconv/prg"
)

type commandContext struct {
	configFlag    *string
	formatFlag    *string
	levelFlag     *string
	prettyOffFlag *bool
}

// session holds what a command run needs: the effective config and the logger.
type session struct {
	cfg     *config.Config
	log     logger.Logger
	logFile io.Closer
}

func (s *session) close() {
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}

// open loads the configuration, applies the command line overrides and installs the
// default logger writing to the command's error stream.
func (c *commandContext) open(cmd *cobra.Command) (*session, error) {
	cfg, path, exists, err := config.Load(strings.TrimSpace(*c.configFlag))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := c.applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	opts := []logger.SlogOption{
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithFormat(cfg.Logging.Format),
	}

	s := &session{cfg: cfg}
	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.logFile = file
		opts = append(opts, logger.WithFile(file))
	}

	s.log = logger.NewSlog(cfg.LogLevel(), false, opts...)
	logger.SetLogger(s.log)
	s.log.Debug("configuration loaded", "path", path, "exists", exists)

	return s, nil
}

func (c *commandContext) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("format") {
		format := strings.ToLower(strings.TrimSpace(*c.formatFlag))
		if _, err := prg.ParseFormat(format); err != nil {
			return fmt.Errorf("--format: %w", err)
		}
		cfg.Convert.Format = format
	}

	if flags.Changed("log-level") {
		level := strings.ToLower(strings.TrimSpace(*c.levelFlag))
		if _, err := logger.ParseLevel(level); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		cfg.Logging.Level = level
	}

	if flags.Changed("pretty-print-off") && *c.prettyOffFlag {
		cfg.Convert.PrettyPrint = false
	}

	return nil
}
