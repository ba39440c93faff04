// Package logger wires the CLI's console output. All progress and warning
// messages go to stderr so resolved pages on stdout stay pipeable.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

var (
	mu     sync.Mutex
	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
)

// Options controls logger initialization.
type Options struct {
	// Level is the minimum level printed (debug, info, warn, error).
	Level string
	// Quiet suppresses everything below errors, regardless of Level.
	Quiet bool
	// NoColor disables styled output.
	NoColor bool
}

func parseLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Init configures the package logger. Safe to call more than once; the
// last call wins.
func Init(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	level := parseLevel(opts.Level)
	if opts.Quiet {
		level = log.ErrorLevel
	}
	logger.SetLevel(level)
	if opts.NoColor {
		logger.SetColorProfile(termenv.Ascii)
	}
}

// SetOutput redirects log output, used by tests to capture messages.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Infof logs a formatted info message.
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Warnf logs a formatted warning message.
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Errorf logs a formatted error message.
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Reporter is an adapter exposing the package logger through Infof/Warnf
// methods, for components that take an injected message sink.
type Reporter struct{}

// Infof implements the reporter interface.
func (Reporter) Infof(format string, args ...interface{}) { Infof(format, args...) }

// Warnf implements the reporter interface.
func (Reporter) Warnf(format string, args ...interface{}) { Warnf(format, args...) }
