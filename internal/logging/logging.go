// Package logging provides a zerolog wrapper with opinionated defaults
// for logsift's own diagnostic output.
//
// All pipeline diagnostics (pattern load warnings, worker failures,
// timing) go through this package so they never mix with the artifact
// the pipeline writes.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the root logger.
type Options struct {
	Level  string
	Format string // "console" or "json"
	Writer io.Writer
}

var (
	mu   sync.RWMutex
	root = newLogger(Options{Level: "info", Format: "console"})
)

// Logger is the project-wide logging type.
type Logger = zerolog.Logger

// Init configures the root logger. Safe to call more than once; the
// last call wins.
func Init(opts Options) {
	mu.Lock()
	defer mu.Unlock()
	root = newLogger(opts)
}

// Get returns the process-wide root logger.
func Get() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Named returns a child logger tagged with a component field.
func Named(component string) Logger {
	if component == "" {
		return Get()
	}
	return Get().With().Str("component", component).Logger()
}

func newLogger(opts Options) zerolog.Logger {
	var w io.Writer = os.Stderr
	if opts.Writer != nil {
		w = opts.Writer
	}
	if opts.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(parseLevel(opts.Level)).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
