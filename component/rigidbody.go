package component

import (
	"math"

	"github.com/lixenwraith/ninja-engine/engine"
	"github.com/lixenwraith/ninja-engine/vmath"
)

// Bounds is an axis-aligned region the body is kept inside, Max exclusive
type Bounds struct {
	Min vmath.Vec2
	Max vmath.Vec2
}

// RigidBodyComponent integrates velocity and gravity into the entity transform
// during the physics phase: v = v + g*dt; p = p + v*dt
//
// It is a position integrator only: no collision response beyond clamping to
// optional bounds, which zeroes the velocity component that hit the edge
type RigidBodyComponent struct {
	engine.BaseComponent

	Velocity vmath.Vec2
	Gravity  vmath.Vec2
	MaxSpeed float64 // 0 = uncapped
	Bounds   *Bounds

	grounded bool
}

// NewRigidBodyComponent creates a body under gravity g
func NewRigidBodyComponent(g vmath.Vec2) *RigidBodyComponent {
	return &RigidBodyComponent{
		BaseComponent: engine.NewBaseComponent(engine.PriorityDefault),
		Gravity:       g,
	}
}

// AddImpulse adds a velocity delta
func (r *RigidBodyComponent) AddImpulse(dv vmath.Vec2) {
	r.Velocity = r.Velocity.Add(dv)
}

// SetVelocityX overrides horizontal velocity, used for direct input control
func (r *RigidBodyComponent) SetVelocityX(vx float64) {
	r.Velocity.X = vx
}

// IsGrounded reports whether the last physics step ended on the bottom bound
func (r *RigidBodyComponent) IsGrounded() bool {
	return r.grounded
}

func (r *RigidBodyComponent) PhysicsTick(dt float64) {
	e := r.Entity()
	if e == nil {
		return
	}
	t := e.Transform()

	r.Velocity = r.Velocity.Add(r.Gravity.Scale(dt))
	r.capSpeed()
	t.Position = t.Position.Add(r.Velocity.Scale(dt))

	r.grounded = false
	if r.Bounds != nil {
		r.clamp(t)
	}
}

// capSpeed limits the velocity magnitude to MaxSpeed
func (r *RigidBodyComponent) capSpeed() {
	if r.MaxSpeed <= 0 {
		return
	}
	if r.Velocity.MagnitudeSq() > r.MaxSpeed*r.MaxSpeed {
		r.Velocity = r.Velocity.Normalized().Scale(r.MaxSpeed)
	}
}

func (r *RigidBodyComponent) clamp(t *engine.TransformComponent) {
	w, h := 1.0, 1.0
	if img, ok := engine.GetComponent[*ImageComponent](r.Entity()); ok && img.Drawable != nil {
		iw, ih := img.Drawable.Size()
		w, h = math.Max(1, float64(iw)), math.Max(1, float64(ih))
	}

	maxX := r.Bounds.Max.X - w
	maxY := r.Bounds.Max.Y - h

	if t.Position.X < r.Bounds.Min.X {
		t.Position.X = r.Bounds.Min.X
		r.Velocity.X = 0
	} else if t.Position.X > maxX {
		t.Position.X = math.Max(r.Bounds.Min.X, maxX)
		r.Velocity.X = 0
	}

	if t.Position.Y < r.Bounds.Min.Y {
		t.Position.Y = r.Bounds.Min.Y
		r.Velocity.Y = 0
	} else if t.Position.Y >= maxY {
		t.Position.Y = math.Max(r.Bounds.Min.Y, maxY)
		if r.Velocity.Y > 0 {
			r.Velocity.Y = 0
		}
		r.grounded = true
	}
}
