package engine

import (
	"math"
	"time"
)

// fpsSampleCount is the window used to average measured FPS
const fpsSampleCount = 10

// Clock tracks wall-clock frame timing with an FPS cap
// Play time accumulates raw (unscaled) frame time
type Clock struct {
	source    TimeSource
	targetFPS int

	last      time.Time
	delta     time.Duration
	playTime  float64
	timeScale float64

	// Ring of recent frame durations for FPS()
	samples     [fpsSampleCount]time.Duration
	sampleIdx   int
	sampleCount int
}

// NewClock creates a clock capped at targetFPS, rejecting non-positive caps
func NewClock(source TimeSource, targetFPS int) (*Clock, error) {
	if targetFPS <= 0 {
		return nil, &ConfigurationError{Field: "target_fps", Value: targetFPS, Reason: "must be greater than zero"}
	}
	if source == nil {
		source = SystemTime{}
	}
	return &Clock{
		source:    source,
		targetFPS: targetFPS,
		last:      source.Now(),
		timeScale: 1.0,
	}, nil
}

// Tick waits out the remainder of the frame budget and returns the elapsed frame time
func (c *Clock) Tick() time.Duration {
	budget := time.Second / time.Duration(c.targetFPS)

	now := c.source.Now()
	if elapsed := now.Sub(c.last); elapsed < budget {
		c.source.Sleep(budget - elapsed)
		now = c.source.Now()
	}

	c.delta = now.Sub(c.last)
	c.last = now
	c.playTime += c.delta.Seconds()

	c.samples[c.sampleIdx] = c.delta
	c.sampleIdx = (c.sampleIdx + 1) % fpsSampleCount
	if c.sampleCount < fpsSampleCount {
		c.sampleCount++
	}

	return c.delta
}

// DeltaTime returns the last frame duration in seconds, unscaled
func (c *Clock) DeltaTime() float64 {
	return c.delta.Seconds()
}

// ScaledDeltaTime returns the last frame duration multiplied by the time scale
func (c *Clock) ScaledDeltaTime() float64 {
	return c.delta.Seconds() * c.timeScale
}

// PlayTime returns total elapsed seconds since the clock was created
func (c *Clock) PlayTime() float64 {
	return c.playTime
}

// TimeScale returns the current gameplay time multiplier
func (c *Clock) TimeScale() float64 {
	return c.timeScale
}

// SetTimeScale sets the gameplay multiplier, negative and non-finite values clamp to 0
func (c *Clock) SetTimeScale(scale float64) {
	if scale < 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 0
	}
	c.timeScale = scale
}

// TargetFPS returns the configured frame cap
func (c *Clock) TargetFPS() int {
	return c.targetFPS
}

// SetTargetFPS changes the frame cap
func (c *Clock) SetTargetFPS(fps int) error {
	if fps <= 0 {
		return &ConfigurationError{Field: "target_fps", Value: fps, Reason: "must be greater than zero"}
	}
	c.targetFPS = fps
	return nil
}

// FPS returns the measured frame rate averaged over recent frames, 0 before the first tick
func (c *Clock) FPS() float64 {
	if c.sampleCount == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < c.sampleCount; i++ {
		total += c.samples[i]
	}
	if total <= 0 {
		return 0
	}
	return float64(c.sampleCount) / total.Seconds()
}
