package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/HIESENBERG503/AIO-BST/internal/config"
)

// Prefix tags every line written by the application logger
const Prefix = "nexus"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the application logger. While the TUI owns the terminal, output
// goes to cfg.File; otherwise it goes to stderr. The returned closer releases
// the log file.
func New(cfg config.LogConfig, tui bool) (*log.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if tui {
		if cfg.File == "" {
			w = io.Discard
		} else {
			f, err := openLogFile(cfg.File)
			if err != nil {
				return nil, nil, err
			}
			w, closer = f, f
		}
	}

	l := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return l, closer, nil
}

// ParseLevel accepts debug, info, warn and error
func ParseLevel(s string) (log.Level, error) {
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	l := log.New(io.Discard)
	l.SetLevel(log.FatalLevel)
	return l
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
