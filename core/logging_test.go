package core

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func restoreStdLog(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	restoreStdLog(t)

	l, err := SetupLogging(false, "", slog.LevelDebug)
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	if l.Path() != "" {
		t.Errorf("Expected no log file when debug=false, got %s", l.Path())
	}
	if output := log.Writer(); output != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", output)
	}
	// Must be usable even when discarding
	l.Engine().Info("dropped")
	if err := l.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	restoreStdLog(t)
	path := filepath.Join(t.TempDir(), "logs", "run.log")

	l, err := SetupLogging(true, path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	defer l.Close()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("Expected log directory to be created: %v", err)
	}

	log.Println("std message")
	l.Engine().Info("entity spawned", "id", 7)
	l.Engine().Debug("below level")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "std message") {
		t.Error("Expected standard log output in file")
	}
	if !strings.Contains(text, "entity spawned") || !strings.Contains(text, "id=7") {
		t.Errorf("Expected structured entry in file, got %q", text)
	}
	if strings.Contains(text, "below level") {
		t.Error("Expected debug entry filtered at info level")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	restoreStdLog(t)
	path := filepath.Join(t.TempDir(), logFileName)

	if err := os.WriteFile(path, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to create large log file: %v", err)
	}

	l, err := SetupLogging(true, path, slog.LevelDebug)
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	defer l.Close()

	rotated, err := os.Stat(path + ".1")
	if err != nil {
		t.Fatalf("Expected rotated log file: %v", err)
	}
	if rotated.Size() != maxLogSize+1 {
		t.Errorf("Expected rotated file to keep %d bytes, got %d", maxLogSize+1, rotated.Size())
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}

func TestSetupLogging_NoStdoutStderr(t *testing.T) {
	restoreStdLog(t)

	l, err := SetupLogging(true, filepath.Join(t.TempDir(), logFileName), slog.LevelDebug)
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	defer l.Close()

	output := log.Writer()
	if output == os.Stdout {
		t.Error("Log output should not be stdout")
	}
	if output == os.Stderr {
		t.Error("Log output should not be stderr")
	}
}

func TestLoggingCloseIdempotent(t *testing.T) {
	restoreStdLog(t)

	l, err := SetupLogging(true, filepath.Join(t.TempDir(), logFileName), slog.LevelDebug)
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("First close: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("Second close: %v", err)
	}
	if log.Writer() != io.Discard {
		t.Error("Expected standard log discarded after close")
	}
}
