package game

import (
	"github.com/lixenwraith/ninja-engine/audio"
	"github.com/lixenwraith/ninja-engine/component"
	"github.com/lixenwraith/ninja-engine/engine"
	"github.com/lixenwraith/ninja-engine/input"
	"github.com/lixenwraith/ninja-engine/vmath"
)

// Input names bound by the player
const (
	AxisHorizontal = "horizontal"
	ActionJump     = "jump"
	ActionPause    = "pause"
)

// Sounds plays short cues, implemented by *audio.Player
type Sounds interface {
	Play(cue audio.Cue)
}

type silent struct{}

func (silent) Play(audio.Cue) {}

// Player is the controllable entity: input drives horizontal velocity and jumps,
// the rigid body integrates gravity, the image draws the sprite
type Player struct {
	engine.BaseComponent

	Entity *engine.Entity
	Body   *component.RigidBodyComponent
	Image  *component.ImageComponent
	Input  *input.InputComponent

	MoveSpeed   float64
	JumpImpulse float64

	clock       *engine.Clock
	sounds      Sounds
	wasGrounded bool
	jumps       int
}

// NewPlayer assembles the player entity around an already loaded image
func NewPlayer(clock *engine.Clock, router *input.Router, img *component.ImageComponent, gravity vmath.Vec2, sounds Sounds) *Player {
	if sounds == nil {
		sounds = silent{}
	}
	p := &Player{
		// After the rigid body, before the render band
		BaseComponent: engine.NewBaseComponent(engine.PriorityDefault + 10),
		Body:          component.NewRigidBodyComponent(gravity),
		Image:         img,
		Input:         input.NewInputComponent(router),
		clock:         clock,
		sounds:        sounds,
		// Spawns standing, no landing cue on the first grounded step
		wasGrounded: true,
	}

	p.Input.BindAxis(AxisHorizontal, p.move)
	p.Input.BindPressed(ActionJump, p.jump)
	p.Input.BindPressed(ActionPause, p.togglePause)

	p.Entity = engine.NewEntity(0, p.Input, p.Body, p.Image, p)
	return p
}

func (p *Player) move(v float64) {
	if p.Paused() {
		return
	}
	p.Body.SetVelocityX(v * p.MoveSpeed)
}

func (p *Player) jump() {
	if p.Paused() || !p.Body.IsGrounded() {
		return
	}
	p.Body.AddImpulse(vmath.V2(0, -p.JumpImpulse))
	p.jumps++
	p.sounds.Play(audio.CueJump)
}

// togglePause freezes logic and physics through the clock time scale
// Input is sampled with unscaled time so the unpause press still arrives
func (p *Player) togglePause() {
	if p.clock == nil {
		return
	}
	if p.Paused() {
		p.clock.SetTimeScale(1)
	} else {
		p.clock.SetTimeScale(0)
	}
	p.sounds.Play(audio.CueBlip)
}

// Paused reports whether the clock is frozen
func (p *Player) Paused() bool {
	return p.clock != nil && p.clock.TimeScale() == 0
}

// Jumps returns the number of jumps taken
func (p *Player) Jumps() int {
	return p.jumps
}

// PhysicsTick plays the landing cue on the first grounded step after being airborne
// Runs after the rigid body within the same step
func (p *Player) PhysicsTick(float64) {
	grounded := p.Body.IsGrounded()
	if grounded && !p.wasGrounded {
		p.sounds.Play(audio.CueLand)
	}
	p.wasGrounded = grounded
}

// Place positions the player in the play area without interpolating from the old position
func (p *Player) Place(pos vmath.Vec2) {
	p.Entity.Transform().Teleport(pos)
}
