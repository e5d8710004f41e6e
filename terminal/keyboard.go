package terminal

import (
	"sync"
	"time"
)

// DefaultHoldWindow covers the gap between the first key press and the OS autorepeat
const DefaultHoldWindow = 120 * time.Millisecond

// Keyboard is a DeviceState for terminals, which report presses and repeats but never releases
// A key counts as down until hold has elapsed since it was last seen
type Keyboard struct {
	mu       sync.Mutex
	hold     time.Duration
	now      func() time.Time
	lastSeen map[string]time.Time
}

// NewKeyboard creates keyboard state; now defaults to time.Now
func NewKeyboard(hold time.Duration, now func() time.Time) *Keyboard {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	if now == nil {
		now = time.Now
	}
	return &Keyboard{
		hold:     hold,
		now:      now,
		lastSeen: make(map[string]time.Time),
	}
}

// Press records a press or autorepeat of key
func (k *Keyboard) Press(key string) {
	if key == "" {
		return
	}
	k.mu.Lock()
	k.lastSeen[key] = k.now()
	k.mu.Unlock()
}

// IsDown implements input.DeviceState
func (k *Keyboard) IsDown(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	seen, ok := k.lastSeen[key]
	if !ok {
		return false
	}
	if k.now().Sub(seen) >= k.hold {
		delete(k.lastSeen, key)
		return false
	}
	return true
}

// Reset releases every key
func (k *Keyboard) Reset() {
	k.mu.Lock()
	clear(k.lastSeen)
	k.mu.Unlock()
}
