// Package logging provides the leveled logger shared by the dispatcher, the
// auth helper, the test-user factory and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Logger is the logging surface injected into every component.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Success(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Level orders log output. Success is reported at info priority.
type Level int

// Log levels.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a level name to a Level. Unknown names fall back to info.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "trace":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelInfo:
		return "info"
	default:
		return "info"
	}
}

type tag struct {
	label string
	color *color.Color
}

// ConsoleLogger writes one line per entry:
//
//	[2024-01-02T15:04:05Z] INFO message key=value
type ConsoleLogger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
	clock func() time.Time

	debug   tag
	info    tag
	success tag
	warn    tag
	err     tag
}

// Option configures a ConsoleLogger.
type Option func(*ConsoleLogger)

// WithLevel sets the minimum level that is written.
func WithLevel(level Level) Option {
	return func(l *ConsoleLogger) {
		l.level = level
	}
}

// WithoutColor disables ANSI colors regardless of the terminal.
func WithoutColor() Option {
	return func(l *ConsoleLogger) {
		for _, t := range []*tag{&l.debug, &l.info, &l.success, &l.warn, &l.err} {
			t.color.DisableColor()
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(l *ConsoleLogger) {
		l.clock = clock
	}
}

// NewConsoleLogger creates a logger writing to out. A nil out means stderr.
func NewConsoleLogger(out io.Writer, opts ...Option) *ConsoleLogger {
	if out == nil {
		out = os.Stderr
	}

	logger := &ConsoleLogger{
		out:     out,
		level:   LevelInfo,
		clock:   time.Now,
		debug:   tag{"DEBUG", color.New(color.FgHiBlack)},
		info:    tag{"INFO", color.New(color.FgCyan)},
		success: tag{"SUCCESS", color.New(color.FgGreen, color.Bold)},
		warn:    tag{"WARN", color.New(color.FgYellow)},
		err:     tag{"ERROR", color.New(color.FgRed, color.Bold)},
	}

	for _, opt := range opts {
		opt(logger)
	}

	return logger
}

// Level returns the configured minimum level.
func (l *ConsoleLogger) Level() Level {
	return l.level
}

// Debug logs a debug message.
func (l *ConsoleLogger) Debug(msg string, fields map[string]interface{}) {
	l.write(LevelDebug, l.debug, msg, fields)
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(msg string, fields map[string]interface{}) {
	l.write(LevelInfo, l.info, msg, fields)
}

// Success logs a completed step at info priority.
func (l *ConsoleLogger) Success(msg string, fields map[string]interface{}) {
	l.write(LevelInfo, l.success, msg, fields)
}

// Warn logs a warning.
func (l *ConsoleLogger) Warn(msg string, fields map[string]interface{}) {
	l.write(LevelWarn, l.warn, msg, fields)
}

// Error logs an error.
func (l *ConsoleLogger) Error(msg string, fields map[string]interface{}) {
	l.write(LevelError, l.err, msg, fields)
}

func (l *ConsoleLogger) write(level Level, t tag, msg string, fields map[string]interface{}) {
	if level < l.level {
		return
	}

	var line strings.Builder

	line.WriteString("[")
	line.WriteString(l.clock().UTC().Format(time.RFC3339))
	line.WriteString("] ")
	line.WriteString(t.color.Sprint(t.label))
	line.WriteString(" ")
	line.WriteString(msg)

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(&line, " %s=%v", key, fields[key])
	}

	line.WriteString("\n")

	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = io.WriteString(l.out, line.String())
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})   {}
func (nopLogger) Info(string, map[string]interface{})    {}
func (nopLogger) Success(string, map[string]interface{}) {}
func (nopLogger) Warn(string, map[string]interface{})    {}
func (nopLogger) Error(string, map[string]interface{})   {}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}
