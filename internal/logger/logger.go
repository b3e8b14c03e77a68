// Package logger builds the zap logger used for diagnostics.
// User-facing report lines are written by the CLI directly; this logger
// carries the structured per-page trail (levels, fields, optional file).
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level and format names accepted by Options.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	FormatConsole = "console"
	FormatText    = "text"
	FormatJSON    = "json"
)

// Options configures the logger outputs.
type Options struct {
	Level  string    // global level (default: info)
	Format string    // console output format (default: console, plain text off a terminal)
	Output io.Writer // console sink (nil = os.Stderr)
	File   FileOptions
}

// FileOptions configures an optional rotating log file.
// The file always uses the level from Options and plain text or JSON.
type FileOptions struct {
	Path       string // empty = no file output
	Format     string // text or json (default: text)
	MaxSize    int    // megabytes
	MaxAge     int    // days
	MaxBackups int
	Compress   bool
}

// Logger wraps zap.Logger and owns the rotating file, if any.
type Logger struct {
	*zap.Logger
	level   zap.AtomicLevel
	closers []io.Closer
}

// New creates a logger writing to Options.Output and, when File.Path is set,
// to a lumberjack-rotated file.
func New(opts Options) (*Logger, error) {
	if opts.File.MaxSize < 0 || opts.File.MaxAge < 0 || opts.File.MaxBackups < 0 {
		return nil, fmt.Errorf("file rotation values cannot be negative")
	}

	level := zap.NewAtomicLevelAt(ParseLevel(opts.Level))

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	format := opts.Format
	if (format == "" || strings.ToLower(format) == FormatConsole) && !isTerminal(out) {
		format = FormatText
	}

	cores := []zapcore.Core{
		zapcore.NewCore(createEncoder(format), zapcore.Lock(zapcore.AddSync(out)), level),
	}

	var closers []io.Closer
	if opts.File.Path != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   opts.File.Path,
			MaxSize:    opts.File.MaxSize,
			MaxAge:     opts.File.MaxAge,
			MaxBackups: opts.File.MaxBackups,
			Compress:   opts.File.Compress,
		}
		fileFormat := opts.File.Format
		if fileFormat == "" || fileFormat == FormatConsole {
			fileFormat = FormatText
		}
		cores = append(cores, zapcore.NewCore(createEncoder(fileFormat), zapcore.AddSync(fileWriter), level))
		closers = append(closers, fileWriter)
	}

	var core zapcore.Core
	if len(cores) == 1 {
		core = cores[0]
	} else {
		core = zapcore.NewTee(cores...)
	}

	return &Logger{
		Logger:  zap.New(core),
		level:   level,
		closers: closers,
	}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop(), level: zap.NewAtomicLevelAt(zap.FatalLevel)}
}

// SetLevel changes the level of every output.
func (l *Logger) SetLevel(level string) {
	l.level.SetLevel(ParseLevel(level))
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	// Sync on a terminal returns EINVAL on some platforms; not worth reporting.
	_ = l.Sync()

	var errs []error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing log file: %w", err))
		}
	}
	return errors.Join(errs...)
}

// isTerminal reports whether w is a terminal that can render color codes.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ParseLevel converts a level name to a zapcore.Level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case LevelDebug:
		return zap.DebugLevel
	case LevelWarn:
		return zap.WarnLevel
	case LevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// createEncoder creates a zapcore.Encoder based on format.
func createEncoder(format string) zapcore.Encoder {
	if strings.ToLower(format) == FormatJSON {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	if strings.ToLower(format) == FormatText {
		// Plain text without color codes (for files)
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		// Console format with color codes (for terminals)
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}
