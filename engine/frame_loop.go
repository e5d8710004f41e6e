package engine

import (
	"context"
	"errors"
)

// RunFrame executes one iteration in fixed phase order:
//
//  1. poll OS/window events (quit detection)
//  2. advance the clock
//  3. resolve pending spawns and destroys
//  4. compute the scaled delta
//  5. sample input and broadcast events
//  6. logic tick, entities in priority order
//  7. fixed-step physics, producing the interpolation fraction
//  8. render tick, entities enqueue deferred draws
//  9. flush the render queue with interpolation and present
//
// Returns false when the loop should stop
func (g *GameContext) RunFrame() bool {
	if g.quitRequested {
		return false
	}
	if g.Events != nil && g.Events.PollEvents() {
		g.quitRequested = true
		return false
	}

	g.Clock.Tick()

	spawned, destroyed := g.Directory.Resolve()

	dt := g.Clock.ScaledDeltaTime()

	if g.Input != nil {
		g.Input.Sample(g.Clock.DeltaTime())
	}

	// One snapshot for every phase of this frame
	entities := g.Directory.Live()
	check := g.Settings.CheckTicking

	for _, e := range entities {
		if dispatchable(e, check) {
			e.tick(dt)
		}
	}

	fraction := g.Simulator.Step(entities, dt)

	for _, e := range entities {
		if dispatchable(e, check) {
			e.renderTick(dt)
		}
	}

	g.lastFraction = fraction
	draws := 0
	if g.Surface != nil {
		draws = g.RenderQueue.Flush(g.Surface, fraction)
		g.Surface.Present()
	} else {
		g.RenderQueue.Discard()
	}

	g.frameNumber++
	g.recordStats(len(entities), spawned, destroyed, draws)
	return true
}

func (g *GameContext) recordStats(live, spawned, destroyed, draws int) {
	s := &g.stats
	s.frames.Store(int64(g.frameNumber))
	s.live.Store(int64(live))
	s.spawned.Add(int64(spawned))
	s.destroyed.Add(int64(destroyed))
	s.steps.Store(int64(g.Simulator.Steps()))
	s.draws.Store(int64(draws))
	s.fps.Set(g.Clock.FPS())
	s.fraction.Set(g.lastFraction)
	s.playTime.Set(g.Clock.PlayTime())
}

// Run loops RunFrame until quit or ctx cancellation, then tears down
// A panic inside a phase propagates; frames are never retried or skipped
func (g *GameContext) Run(ctx context.Context) error {
	g.Log.Info("frame loop started", "target_fps", g.Settings.TargetFPS, "fixed_delta_time", g.Settings.FixedDeltaTime)

	var runErr error
	for {
		if err := ctx.Err(); err != nil {
			if !errors.Is(err, context.Canceled) {
				runErr = err
			}
			break
		}
		if !g.RunFrame() {
			break
		}
	}

	g.Log.Info("frame loop stopped", "frames", g.frameNumber, "play_time", g.Clock.PlayTime())
	return errors.Join(runErr, g.Teardown())
}
