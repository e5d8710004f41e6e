package engine

import (
	"errors"
	"io"
	"math"
	"sync/atomic"

	"github.com/lixenwraith/ninja-engine/status"
)

// Settings is the engine configuration read once at startup
type Settings struct {
	TargetFPS      int
	FixedDeltaTime float64 // seconds per physics tick
	Interpolation  bool
	MaxFrameTime   float64 // seconds, 0 = uncapped
	CheckTicking   bool    // gate dispatch on Entity.IsTicking
	Title          string
}

// DefaultSettings mirrors the stock engine.toml
func DefaultSettings() Settings {
	return Settings{
		TargetFPS:      60,
		FixedDeltaTime: 1.0 / 60.0,
		Interpolation:  true,
		MaxFrameTime:   0.25,
		CheckTicking:   true,
		Title:          "ninja",
	}
}

// Validate reports every invalid field
func (s Settings) Validate() error {
	var errs []error
	if s.TargetFPS <= 0 {
		errs = append(errs, &ConfigurationError{Field: "target_fps", Value: s.TargetFPS, Reason: "must be greater than zero"})
	}
	if s.FixedDeltaTime <= 0 || math.IsNaN(s.FixedDeltaTime) || math.IsInf(s.FixedDeltaTime, 0) {
		errs = append(errs, &ConfigurationError{Field: "fixed_delta_time", Value: s.FixedDeltaTime, Reason: "must be a finite value greater than zero"})
	}
	if s.MaxFrameTime < 0 || math.IsNaN(s.MaxFrameTime) {
		errs = append(errs, &ConfigurationError{Field: "max_frame_time", Value: s.MaxFrameTime, Reason: "must not be negative"})
	}
	return errors.Join(errs...)
}

// EventSource pumps OS/window events, returning true when quit was requested
type EventSource interface {
	PollEvents() (quit bool)
}

// InputSampler samples device state and broadcasts input events once per frame
type InputSampler interface {
	Sample(dt float64)
}

// GameContext is the single per-run engine instance passed to the frame loop
// It owns the clock, directory, simulator and render queue; collaborators are
// assigned after construction
type GameContext struct {
	Settings Settings

	Clock       *Clock
	Directory   *Directory
	Simulator   *Simulator
	RenderQueue *RenderQueue

	Surface Surface
	Events  EventSource
	Input   InputSampler
	Log     Logger

	// Stats is written once per frame and safe to read from other goroutines
	Stats *status.Registry
	stats frameStats

	closers       []io.Closer
	quitRequested bool
	frameNumber   uint64
	lastFraction  float64
}

// NewGameContext validates settings and builds the engine core
func NewGameContext(settings Settings, surface Surface, source TimeSource, log Logger) (*GameContext, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = NopLogger{}
	}

	clock, err := NewClock(source, settings.TargetFPS)
	if err != nil {
		return nil, err
	}
	sim, err := NewSimulator(settings.FixedDeltaTime, settings.Interpolation)
	if err != nil {
		return nil, err
	}
	if err := sim.SetMaxFrameTime(settings.MaxFrameTime); err != nil {
		return nil, err
	}
	sim.SetCheckTicking(settings.CheckTicking)

	if surface != nil && settings.Title != "" {
		surface.SetTitle(settings.Title)
	}

	reg := status.NewRegistry()
	return &GameContext{
		Settings:    settings,
		Clock:       clock,
		Directory:   NewDirectory(log),
		Simulator:   sim,
		RenderQueue: NewRenderQueue(),
		Surface:     surface,
		Log:         log,
		Stats:       reg,
		stats:       newFrameStats(reg),
	}, nil
}

// frameStats caches the registry pointers the frame loop writes
type frameStats struct {
	frames    *atomic.Int64
	live      *atomic.Int64
	spawned   *atomic.Int64
	destroyed *atomic.Int64
	steps     *atomic.Int64
	draws     *atomic.Int64
	fps       *status.AtomicFloat
	fraction  *status.AtomicFloat
	playTime  *status.AtomicFloat
}

func newFrameStats(reg *status.Registry) frameStats {
	return frameStats{
		frames:    reg.Counter("frame.count"),
		live:      reg.Counter("entity.live"),
		spawned:   reg.Counter("entity.spawned"),
		destroyed: reg.Counter("entity.destroyed"),
		steps:     reg.Counter("physics.steps"),
		draws:     reg.Counter("render.draws"),
		fps:       reg.Gauge("frame.fps"),
		fraction:  reg.Gauge("physics.fraction"),
		playTime:  reg.Gauge("clock.play_time"),
	}
}

// Spawn queues e to enter play at the next frame boundary
func (g *GameContext) Spawn(e *Entity) bool {
	return g.Directory.Spawn(e)
}

// Destroy queues e to exit play at the next frame boundary
func (g *GameContext) Destroy(e *Entity) bool {
	return g.Directory.Destroy(e)
}

// RequestQuit ends the loop before the next frame starts
func (g *GameContext) RequestQuit() {
	g.quitRequested = true
}

// QuitRequested reports whether RequestQuit was called
func (g *GameContext) QuitRequested() bool {
	return g.quitRequested
}

// AddCloser registers a resource released at Teardown, in reverse order of registration
func (g *GameContext) AddCloser(c io.Closer) {
	if c != nil {
		g.closers = append(g.closers, c)
	}
}

// FrameNumber returns the number of completed frames
func (g *GameContext) FrameNumber() uint64 {
	return g.frameNumber
}

// InterpolationFraction returns the fraction used by the latest flush
func (g *GameContext) InterpolationFraction() float64 {
	return g.lastFraction
}

// Teardown exits play for all live entities and releases registered resources
func (g *GameContext) Teardown() error {
	g.Directory.Clear()
	g.RenderQueue.Discard()

	var errs []error
	for i := len(g.closers) - 1; i >= 0; i-- {
		if err := g.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	g.closers = nil
	return errors.Join(errs...)
}
