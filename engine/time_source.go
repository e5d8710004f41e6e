package engine

import (
	"sync"
	"time"
)

// TimeSource is the monotonic clock collaborator behind Clock
type TimeSource interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemTime reads the OS monotonic clock
type SystemTime struct{}

func (SystemTime) Now() time.Time { return time.Now() }

func (SystemTime) Sleep(d time.Duration) { time.Sleep(d) }

// MockTimeSource provides a controllable time source for testing
// Sleep advances the mocked time instead of blocking
type MockTimeSource struct {
	mu          sync.RWMutex
	currentTime time.Time
	slept       time.Duration
}

// NewMockTimeSource creates a new mock time source with the given start time
func NewMockTimeSource(startTime time.Time) *MockTimeSource {
	return &MockTimeSource{currentTime: startTime}
}

// Now returns the current mocked time
func (m *MockTimeSource) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Sleep advances the mocked time by d
func (m *MockTimeSource) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
	m.slept += d
}

// Advance advances the current time by the given duration, simulating frame work
func (m *MockTimeSource) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// Slept returns the cumulative duration passed to Sleep
func (m *MockTimeSource) Slept() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.slept
}
