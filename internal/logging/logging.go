// Package logging builds the charmbracelet/log logger shared by the store,
// the screen and the shell.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Options selects level and destination.
type Options struct {
	Level string
	// File, when set, receives log output instead of Fallback.
	File string
	// Fallback is used when File is empty. The TUI passes io.Discard since
	// it owns the terminal; the shell passes os.Stderr.
	Fallback io.Writer
}

// New returns a logger and a close func for the underlying file, if any.
func New(opts Options) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	w := opts.Fallback
	if w == nil {
		w = io.Discard
	}
	closer := func() error { return nil }
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: opts.File != "",
		Prefix:          "tasks",
	})
	return logger, closer, nil
}
