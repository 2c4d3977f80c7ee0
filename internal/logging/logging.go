// Package logging builds the logrus loggers used across pullview.
//
// A full-screen terminal UI cannot write logs to stdout, so loggers write to a
// dated file under the configured directory:
//
//	<dir>/pullview-2026-10-18.log
//
// An empty directory discards everything. PULLVIEW_LOG_LEVEL overrides the
// configured level.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const levelEnv = "PULLVIEW_LOG_LEVEL"

// Options select where and how much to log.
type Options struct {
	Dir   string
	Level string
}

var (
	mu      sync.Mutex
	base    *logrus.Logger
	file    *os.File
	entries = make(map[string]*logrus.Entry)
)

// Setup configures the shared logger. It returns the log file path, or an
// empty string when logging is discarded.
func Setup(opts Options) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	logger := logrus.New()
	logger.SetLevel(parseLevel(opts.Level))
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	dir := strings.TrimSpace(opts.Dir)
	if dir == "" {
		logger.SetOutput(io.Discard)
		base = logger
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.SetOutput(io.Discard)
		base = logger
		return "", fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("pullview-%s.log", time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.SetOutput(io.Discard)
		base = logger
		return "", fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	base = logger
	file = f
	return path, nil
}

// New returns the logger for component. Before Setup runs it discards output.
func New(component string) *logrus.Entry {
	mu.Lock()
	defer mu.Unlock()

	if entry, ok := entries[component]; ok {
		return entry
	}
	if base == nil {
		base = logrus.New()
		base.SetOutput(io.Discard)
	}
	entry := base.WithField("component", component)
	entries[component] = entry
	return entry
}

// Close flushes and closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	entries = make(map[string]*logrus.Entry)
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func parseLevel(configured string) logrus.Level {
	levelStr := "info"
	if env := strings.TrimSpace(os.Getenv(levelEnv)); env != "" {
		levelStr = env
	} else if strings.TrimSpace(configured) != "" {
		levelStr = configured
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
