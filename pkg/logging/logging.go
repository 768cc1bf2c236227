package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log styles
const (
	StyleSimple  = "simple"
	StyleModern  = "modern"
	StyleMinimal = "minimal"
	StyleJSON    = "json"
)

// Options describes the console and file sinks of a logger
type Options struct {
	// StreamLevel is the console threshold, WriteLevel the log file threshold
	StreamLevel string
	WriteLevel  string
	// File enables the file sink when non-empty
	File  string
	Style string
	// Verbosity is the -v count; it can only lower the console threshold
	Verbosity int
	// Out defaults to os.Stderr
	Out io.Writer
}

var levelAliases = map[string]zerolog.Level{
	"success":  zerolog.InfoLevel,
	"warning":  zerolog.WarnLevel,
	"critical": zerolog.ErrorLevel,
}

// ParseLevel accepts zerolog level names plus the success, warning and
// critical aliases.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if level, ok := levelAliases[name]; ok {
		return level, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// ValidStyle reports whether style names a known console style
func ValidStyle(style string) bool {
	_, ok := normalizeStyle(style)
	return ok
}

func normalizeStyle(style string) (string, bool) {
	switch strings.ToLower(style) {
	case "", StyleSimple:
		return StyleSimple, true
	case StyleModern:
		return StyleModern, true
	case StyleMinimal, "minimalistic":
		return StyleMinimal, true
	case StyleJSON:
		return StyleJSON, true
	}
	return "", false
}

// verbosityLevel maps the -v count to a console threshold
func verbosityLevel(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.Disabled
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// New builds a logger from opts without touching global state. The
// returned closer releases the log file, if any.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	streamLevel, err := levelOrDefault(opts.StreamLevel, zerolog.InfoLevel)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	if v := verbosityLevel(opts.Verbosity); v < streamLevel {
		streamLevel = v
	}
	writeLevel, err := levelOrDefault(opts.WriteLevel, zerolog.DebugLevel)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	style, ok := normalizeStyle(opts.Style)
	if !ok {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("unknown log style %q", opts.Style)
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	sinks := []io.Writer{&levelFilter{w: consoleWriter(out, style), min: streamLevel}}
	minLevel := streamLevel
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		file, err := openLogFile(opts.File)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		sinks = append(sinks, &levelFilter{w: file, min: writeLevel})
		closer = file
		if writeLevel < minLevel {
			minLevel = writeLevel
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(sinks...)).Level(minLevel).With().Timestamp()
	if style == StyleModern || streamLevel <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), closer, nil
}

func levelOrDefault(name string, fallback zerolog.Level) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return fallback, nil
	}
	return ParseLevel(name)
}

func consoleWriter(out io.Writer, style string) io.Writer {
	switch style {
	case StyleJSON:
		return out
	case StyleModern:
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case StyleMinimal:
		return zerolog.ConsoleWriter{
			Out:          out,
			NoColor:      true,
			PartsExclude: []string{zerolog.TimestampFieldName, zerolog.CallerFieldName},
		}
	default:
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
}

// openLogFile creates the log file and its parent directories
func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// levelFilter drops events below min before they reach w
type levelFilter struct {
	w   io.Writer
	min zerolog.Level
}

func (f *levelFilter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f *levelFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < f.min {
		return len(p), nil
	}
	return f.w.Write(p)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupGlobal installs logger as the package-level zerolog logger. Only the
// CLI layer calls this; core packages receive their logger explicitly.
func SetupGlobal(logger zerolog.Logger) {
	log.Logger = logger
}

// Component returns logger tagged with the given component name
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// GetLogger returns a component logger derived from the global logger
func GetLogger(name string) zerolog.Logger {
	return Component(log.Logger, name)
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
