package engine

import "math"

// Simulator runs physics at a fixed step using a time accumulator
//
// Each Step adds the frame delta, runs as many fixed physics ticks as fit and
// keeps the remainder, so after every Step 0 <= Accumulator() < FixedStep().
// The returned fraction is the share of a step already elapsed, used to
// interpolate rendering between the last two simulated positions
type Simulator struct {
	fixedStep     float64
	interpolation bool
	checkTicking  bool
	maxFrameTime  float64 // 0 = uncapped

	accumulator float64
	fraction    float64
	steps       uint64
}

// NewSimulator validates fixedStep (seconds) and returns a simulator with an empty accumulator
func NewSimulator(fixedStep float64, interpolation bool) (*Simulator, error) {
	if fixedStep <= 0 || math.IsNaN(fixedStep) || math.IsInf(fixedStep, 0) {
		return nil, &ConfigurationError{Field: "fixed_delta_time", Value: fixedStep, Reason: "must be a finite value greater than zero"}
	}
	return &Simulator{
		fixedStep:     fixedStep,
		interpolation: interpolation,
		checkTicking:  true,
		fraction:      initialFraction(interpolation),
	}, nil
}

// SetMaxFrameTime caps the delta fed to a single Step, 0 disables the cap
func (s *Simulator) SetMaxFrameTime(seconds float64) error {
	if seconds < 0 || math.IsNaN(seconds) {
		return &ConfigurationError{Field: "max_frame_time", Value: seconds, Reason: "must not be negative"}
	}
	s.maxFrameTime = seconds
	return nil
}

// SetCheckTicking toggles the entity ticking gate for physics dispatch
func (s *Simulator) SetCheckTicking(check bool) {
	s.checkTicking = check
}

// SetInterpolation toggles fractional rendering; when off the fraction is always 1
func (s *Simulator) SetInterpolation(enabled bool) {
	s.interpolation = enabled
}

// Step advances the accumulator by frameDelta, physics-ticks entities zero or more
// times at the fixed step in order, and returns the interpolation fraction
func (s *Simulator) Step(entities []*Entity, frameDelta float64) float64 {
	// Non-finite time would never drain the accumulator
	if frameDelta < 0 || math.IsNaN(frameDelta) || math.IsInf(frameDelta, 0) {
		frameDelta = 0
	}
	if s.maxFrameTime > 0 && frameDelta > s.maxFrameTime {
		frameDelta = s.maxFrameTime
	}

	s.accumulator += frameDelta
	for s.accumulator >= s.fixedStep {
		for _, e := range entities {
			if dispatchable(e, s.checkTicking) {
				e.physicsTick(s.fixedStep)
			}
		}
		s.accumulator -= s.fixedStep
		s.steps++
	}

	if s.interpolation {
		s.fraction = s.accumulator / s.fixedStep
	} else {
		s.fraction = 1.0
	}
	return s.fraction
}

// Reset empties the accumulator
func (s *Simulator) Reset() {
	s.accumulator = 0
	s.fraction = initialFraction(s.interpolation)
}

func (s *Simulator) FixedStep() float64   { return s.fixedStep }
func (s *Simulator) Accumulator() float64 { return s.accumulator }
func (s *Simulator) Fraction() float64    { return s.fraction }
func (s *Simulator) Interpolation() bool  { return s.interpolation }

// Steps returns the total number of physics ticks run
func (s *Simulator) Steps() uint64 { return s.steps }

func initialFraction(interpolation bool) float64 {
	if interpolation {
		return 0
	}
	return 1
}
