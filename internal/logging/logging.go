// Package logging configures the pipeline's diagnostic logging: a thin
// wrapper over log/slog providing level/format parsing and a process-wide
// default logger, styled after MacroPower-x's own log package rather than
// pulling in a third-party logging library.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Format is the log output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

var (
	ErrUnknownLevel  = errors.New("unknown log level")
	ErrUnknownFormat = errors.New("unknown log format")
)

// GetLevel parses a log level string into a slog.Level.
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}

// GetFormat parses a log format string into a Format.
func GetFormat(format string) (Format, error) {
	switch Format(strings.ToLower(format)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatText, "":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// CreateHandler builds a slog.Handler for the given writer, level, and
// format.
func CreateHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// CreateHandlerWithStrings is CreateHandler taking unparsed level/format
// strings, returning a descriptive error for invalid input.
func CreateHandlerWithStrings(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, err
	}
	fmtv, err := GetFormat(format)
	if err != nil {
		return nil, err
	}
	return CreateHandler(w, lvl, fmtv), nil
}

var (
	mu      sync.RWMutex
	current = slog.New(CreateHandler(os.Stderr, slog.LevelInfo, FormatText))
)

// Configure installs the process-wide default logger, used by Default.
func Configure(w io.Writer, level, format string) error {
	handler, err := CreateHandlerWithStrings(w, level, format)
	if err != nil {
		return err
	}
	mu.Lock()
	current = slog.New(handler)
	mu.Unlock()
	return nil
}

// Default returns the process-wide logger configured by Configure, or a
// sensible text-on-stderr default if Configure was never called.
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}
