package core

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lixenwraith/ninja-engine/engine"
)

const (
	logDir      = "logs"
	logFileName = "ninja.log"
	maxLogSize  = 10 * 1024 * 1024 // Rotate once the previous run's file exceeds 10MB
)

// Logging is the process-wide log sink
// Nothing is written to stdout or stderr, the terminal belongs to the screen
type Logging struct {
	Logger *slog.Logger
	file   *os.File
}

// SetupLogging routes both the standard log package and the returned slog logger to a file
// when debug is set, and discards everything otherwise. An empty path selects logs/ninja.log
func SetupLogging(debug bool, path string, level slog.Level) (*Logging, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return &Logging{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}, nil
	}

	if path == "" {
		path = filepath.Join(logDir, logFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	if err := rotateLog(path); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	return &Logging{
		Logger: slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})),
		file:   f,
	}, nil
}

// rotateLog renames an oversized log to <path>.1, replacing any older rotation
func rotateLog(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return nil
	}
	if err := os.Rename(path, path+".1"); err != nil {
		return fmt.Errorf("log rotate: %w", err)
	}
	return nil
}

// Engine adapts the logger for engine packages
func (l *Logging) Engine() engine.Logger {
	return engine.NewSlogLogger(l.Logger)
}

// Path returns the open log file path, empty when logging is discarded
func (l *Logging) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close flushes and closes the log file, implements io.Closer
func (l *Logging) Close() error {
	if l.file == nil {
		return nil
	}
	log.SetOutput(io.Discard)
	err := l.file.Close()
	l.file = nil
	return err
}
