package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/phsym/console-slog"
	slogmulti "github.com/samber/slog-multi"
)

// Output formats accepted by WithFormat.
const (
	FormatAuto    = ""
	FormatConsole = "console"
	FormatJSON    = "json"
)

type SlogLogger struct {
	mu     sync.Mutex
	logger *slog.Logger
	level  *slog.LevelVar
}

type slogConfig struct {
	output io.Writer
	format string
	files  []io.Writer
}

// SlogOption configures a logger created by NewSlog.
type SlogOption func(*slogConfig)

// WithOutput sets the primary log destination. Defaults to os.Stderr.
func WithOutput(w io.Writer) SlogOption {
	return func(c *slogConfig) { c.output = w }
}

// WithFormat sets the primary output format, FormatConsole or FormatJSON.
//
// With FormatAuto, the default, console output is used when the destination is a
// terminal or the ENV environment variable is "development", JSON otherwise.
func WithFormat(format string) SlogOption {
	return func(c *slogConfig) { c.format = format }
}

// WithFile adds a destination that always receives JSON records, such as a log file.
func WithFile(w io.Writer) SlogOption {
	return func(c *slogConfig) { c.files = append(c.files, w) }
}

// NewSlog create a slog instance
func NewSlog(level Level, addSource bool, opts ...SlogOption) Logger {
	cfg := &slogConfig{output: os.Stderr}
	for _, opt := range opts {
		opt(cfg)
	}

	inst := &SlogLogger{}
	inst.level = &slog.LevelVar{}
	inst.level.Set(toSlogLevel(level))

	handlers := make([]slog.Handler, 0, 1+len(cfg.files))
	if useConsole(cfg.format, cfg.output) {
		handlerOpts := &console.HandlerOptions{
			AddSource: addSource || os.Getenv("ENV") == "development",
			Level:     inst.level,
		}
		handlers = append(handlers, console.NewHandler(cfg.output, handlerOpts))
	} else {
		handlers = append(handlers, newJSONHandler(cfg.output, inst.level, addSource))
	}

	for _, w := range cfg.files {
		handlers = append(handlers, newJSONHandler(w, inst.level, addSource))
	}

	if len(handlers) == 1 {
		inst.logger = slog.New(handlers[0])
	} else {
		inst.logger = slog.New(slogmulti.Fanout(handlers...))
	}

	return inst
}

func newJSONHandler(w io.Writer, level slog.Leveler, addSource bool) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: addSource,
		Level:     level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	}

	return slog.NewJSONHandler(w, opts)
}

func useConsole(format string, w io.Writer) bool {
	switch format {
	case FormatConsole:
		return true
	case FormatJSON:
		return false
	}

	if os.Getenv("ENV") == "development" {
		return true
	}

	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (l *SlogLogger) Debug(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelDebug, msg, keysAndValues...)
}

func (l *SlogLogger) Info(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, keysAndValues...)
}

func (l *SlogLogger) Warn(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, keysAndValues...)
}

func (l *SlogLogger) Error(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelError, msg, keysAndValues...)
}

func (l *SlogLogger) Fatal(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelError, msg, keysAndValues...)
	os.Exit(1)
}

func (l *SlogLogger) With(keyValues ...any) Logger {
	return &SlogLogger{
		logger: l.logger.With(keyValues...),
		level:  l.level,
	}
}

func (l *SlogLogger) Level() Level {
	levelMap := map[slog.Level]Level{
		slog.LevelDebug: DebugLevel,
		slog.LevelInfo:  InfoLevel,
		slog.LevelWarn:  WarnLevel,
		slog.LevelError: ErrorLevel,
	}
	lv := l.level.Level()
	if level, ok := levelMap[lv]; ok {
		return level
	}
	return ErrorLevel
}

func (l *SlogLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.level.Set(toSlogLevel(level))
}

// log is the low-level logging method for methods that take ...any.
// It must always be called directly by an exported logging method
// or function, because it uses a fixed call depth to obtain the pc.
func (l *SlogLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if !l.logger.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	// skip [runtime.Callers, this function, this function's caller]
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = l.logger.Handler().Handle(ctx, r)
}

func toSlogLevel(level Level) slog.Level {
	levelMap := map[Level]slog.Level{ //nolint: exhaustive
		DebugLevel: slog.LevelDebug,
		InfoLevel:  slog.LevelInfo,
		WarnLevel:  slog.LevelWarn,
		ErrorLevel: slog.LevelError,
	}
	if slogLevel, ok := levelMap[level]; ok {
		return slogLevel
	}
	return slog.LevelError
}
