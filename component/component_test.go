package component

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ninja-engine/asset"
	"github.com/lixenwraith/ninja-engine/engine"
	"github.com/lixenwraith/ninja-engine/vmath"
)

type blit struct {
	d   engine.Drawable
	pos vmath.Vec2
}

type stubSurface struct {
	blits []blit
}

func (s *stubSurface) Blit(d engine.Drawable, pos vmath.Vec2) { s.blits = append(s.blits, blit{d, pos}) }
func (s *stubSurface) Present()                               {}
func (s *stubSurface) Size() (int, int)                       { return 80, 24 }
func (s *stubSurface) SetTitle(string)                        {}

type stubSource struct {
	sprite *asset.Sprite
	err    error
	path   string
}

func (s *stubSource) Load(path string, key color.Color) (*asset.Sprite, error) {
	s.path = path
	return s.sprite, s.err
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// run spawns e and dispatches n physics ticks at dt
func run(e *engine.Entity, n int, dt float64) {
	d := engine.NewDirectory(nil)
	d.Spawn(e)
	d.Resolve()
	sim, _ := engine.NewSimulator(dt, true)
	sim.Step(d.Live(), dt*float64(n)+dt/2)
}

func TestRigidBodyIntegratesGravity(t *testing.T) {
	body := NewRigidBodyComponent(vmath.V2(0, 10))
	e := engine.NewEntity(0, body)

	run(e, 1, 0.1)

	if !near(body.Velocity.Y, 1) {
		t.Errorf("Expected velocity 1 after one step, got %f", body.Velocity.Y)
	}
	if !near(e.Transform().Position.Y, 0.1) {
		t.Errorf("Expected position 0.1 after one step, got %f", e.Transform().Position.Y)
	}
	if e.Transform().Previous.Y != 0 {
		t.Errorf("Expected previous snapshot at origin, got %f", e.Transform().Previous.Y)
	}
}

func TestRigidBodyImpulse(t *testing.T) {
	body := NewRigidBodyComponent(vmath.Zero)
	e := engine.NewEntity(0, body)
	body.AddImpulse(vmath.V2(4, -2))
	body.SetVelocityX(8)

	run(e, 2, 0.25)

	if !near(e.Transform().Position.X, 4) || !near(e.Transform().Position.Y, -1) {
		t.Errorf("Expected position (4,-1), got %v", e.Transform().Position)
	}
}

func TestRigidBodyMaxSpeed(t *testing.T) {
	body := NewRigidBodyComponent(vmath.Zero)
	body.MaxSpeed = 5
	body.Velocity = vmath.V2(30, 40)
	e := engine.NewEntity(0, body)

	run(e, 1, 0.1)

	if !near(body.Velocity.X, 3) || !near(body.Velocity.Y, 4) {
		t.Errorf("Expected velocity capped to (3,4), got %v", body.Velocity)
	}
}

func TestRigidBodyBoundsGrounding(t *testing.T) {
	body := NewRigidBodyComponent(vmath.V2(0, 10))
	body.Bounds = &Bounds{Min: vmath.Zero, Max: vmath.V2(10, 5)}
	e := engine.NewEntity(0, body)
	e.Transform().Teleport(vmath.V2(0, 3.95))
	body.Velocity.Y = 10

	run(e, 1, 0.1)

	if e.Transform().Position.Y != 4 {
		t.Errorf("Expected body clamped to floor at 4, got %f", e.Transform().Position.Y)
	}
	if body.Velocity.Y != 0 {
		t.Errorf("Expected vertical velocity zeroed on landing, got %f", body.Velocity.Y)
	}
	if !body.IsGrounded() {
		t.Error("Expected body to be grounded")
	}

	body.AddImpulse(vmath.V2(0, -20))
	run2 := func() {
		sim, _ := engine.NewSimulator(0.1, true)
		sim.Step([]*engine.Entity{e}, 0.15)
	}
	run2()
	if body.IsGrounded() {
		t.Error("Expected body airborne after jump impulse")
	}
}

func TestRigidBodyBoundsUseImageSize(t *testing.T) {
	body := NewRigidBodyComponent(vmath.Zero)
	body.Bounds = &Bounds{Min: vmath.Zero, Max: vmath.V2(10, 10)}
	img := NewImageComponent(nil, asset.NewSolidSprite(3, 2, tcell.ColorRed))
	e := engine.NewEntity(0, body, img)
	e.Transform().Teleport(vmath.V2(20, 20))

	run(e, 1, 0.1)

	if got := e.Transform().Position; got != vmath.V2(7, 8) {
		t.Errorf("Expected clamp to (7,8) for a 3x2 sprite, got %v", got)
	}
}

func TestImageComponentEnqueuesInterpolatedDraw(t *testing.T) {
	queue := engine.NewRenderQueue()
	sprite := asset.NewSolidSprite(1, 1, tcell.ColorBlue)
	img := NewImageComponent(queue, sprite)
	img.Offset = vmath.V2(1, 0)
	e := engine.NewEntity(0, img)
	e.Transform().Previous = vmath.V2(0, 0)
	e.Transform().Position = vmath.V2(4, 2)

	img.RenderTick(0.016)
	if queue.Len() != 1 {
		t.Fatalf("Expected one draw command, got %d", queue.Len())
	}

	surface := &stubSurface{}
	queue.Flush(surface, 0.5)
	if len(surface.blits) != 1 {
		t.Fatalf("Expected one blit, got %d", len(surface.blits))
	}
	if surface.blits[0].pos != vmath.V2(3, 1) {
		t.Errorf("Expected interpolated position (3,1), got %v", surface.blits[0].pos)
	}
	if surface.blits[0].d != engine.Drawable(sprite) {
		t.Error("Expected the sprite to be blitted")
	}
}

func TestImageComponentHidden(t *testing.T) {
	queue := engine.NewRenderQueue()
	img := NewImageComponent(queue, asset.NewSolidSprite(1, 1, tcell.ColorBlue))
	engine.NewEntity(0, img)
	img.Visible = false

	img.RenderTick(0.016)
	if queue.Len() != 0 {
		t.Errorf("Expected hidden image not to draw, got %d", queue.Len())
	}
}

func TestLoadImageComponent(t *testing.T) {
	queue := engine.NewRenderQueue()
	sprite := asset.NewSolidSprite(2, 2, tcell.ColorGreen)
	src := &stubSource{sprite: sprite}

	img, err := LoadImageComponent(queue, src, "images/player.png", nil)
	if err != nil {
		t.Fatalf("LoadImageComponent: %v", err)
	}
	if src.path != "images/player.png" || img.Drawable != engine.Drawable(sprite) {
		t.Errorf("Expected loaded sprite for requested path, got %q", src.path)
	}
	if img.Priority() != engine.PriorityRender {
		t.Errorf("Expected render priority, got %d", img.Priority())
	}
}

func TestLoadImageComponentMissingAsset(t *testing.T) {
	loader, _ := asset.NewLoader(t.TempDir(), 1)
	img, err := LoadImageComponent(engine.NewRenderQueue(), loader, "missing.png", nil)
	if img != nil {
		t.Error("Expected no component for a missing asset")
	}
	if !errors.Is(err, engine.ErrAssetNotFound) {
		t.Errorf("Expected ErrAssetNotFound, got %v", err)
	}
}
