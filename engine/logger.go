package engine

import "log/slog"

// Logger is the structured logging surface used by engine code
type Logger interface {
	Info(msg string, keyValues ...any)
	Warn(msg string, keyValues ...any)
	Error(msg string, keyValues ...any)
	Debug(msg string, keyValues ...any)
}

// NopLogger discards everything, default for tests and headless runs
type NopLogger struct{}

func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
func (NopLogger) Debug(string, ...any) {}

// SlogLogger adapts *slog.Logger to Logger
type SlogLogger struct {
	logger *slog.Logger
}

func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

func (a *SlogLogger) Info(msg string, keyValues ...any) {
	a.logger.Info(msg, keyValues...)
}

func (a *SlogLogger) Warn(msg string, keyValues ...any) {
	a.logger.Warn(msg, keyValues...)
}

func (a *SlogLogger) Error(msg string, keyValues ...any) {
	a.logger.Error(msg, keyValues...)
}

func (a *SlogLogger) Debug(msg string, keyValues ...any) {
	a.logger.Debug(msg, keyValues...)
}
