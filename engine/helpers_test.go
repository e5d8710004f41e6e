package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/ninja-engine/vmath"
)

// recorder is an instrumented component appending "name:phase" to a shared log
type recorder struct {
	BaseComponent
	name string
	log  *[]string

	onTick  func()
	onEnter func()
}

func newRecorder(name string, p Priority, log *[]string) *recorder {
	return &recorder{BaseComponent: NewBaseComponent(p), name: name, log: log}
}

func (r *recorder) record(phase string) {
	*r.log = append(*r.log, r.name+":"+phase)
}

func (r *recorder) EnterPlay() {
	r.record("enter")
	if r.onEnter != nil {
		r.onEnter()
	}
}

func (r *recorder) ExitPlay() { r.record("exit") }

func (r *recorder) Tick(float64) {
	r.record("tick")
	if r.onTick != nil {
		r.onTick()
	}
}

func (r *recorder) PhysicsTick(float64) { r.record("physics") }
func (r *recorder) RenderTick(float64)  { r.record("render") }

// mover integrates a constant velocity in the physics phase
type mover struct {
	BaseComponent
	velocity vmath.Vec2
	lastDt   float64
}

func (m *mover) PhysicsTick(dt float64) {
	t := m.Entity().Transform()
	t.Position = t.Position.Add(m.velocity.Scale(dt))
}

func (m *mover) Tick(dt float64) { m.lastDt = dt }

// fakeSurface records blits and presents
type fakeSurface struct {
	log      *[]string
	blits    []vmath.Vec2
	presents int
	title    string
	w, h     int
}

func (s *fakeSurface) Blit(d Drawable, pos vmath.Vec2) {
	s.blits = append(s.blits, pos)
	if s.log != nil {
		*s.log = append(*s.log, fmt.Sprintf("blit:%v", pos))
	}
}

func (s *fakeSurface) Present() {
	s.presents++
	if s.log != nil {
		*s.log = append(*s.log, "present")
	}
}

func (s *fakeSurface) Size() (int, int)       { return s.w, s.h }
func (s *fakeSurface) SetTitle(title string) { s.title = title }

type fakeDrawable struct{}

func (fakeDrawable) Size() (int, int) { return 1, 1 }

// drawer enqueues a draw of its entity in the render phase
type drawer struct {
	BaseComponent
	queue *RenderQueue
}

func (d *drawer) RenderTick(float64) {
	t := d.Entity().Transform()
	d.queue.Enqueue(DrawCommand{Drawable: fakeDrawable{}, Position: t.Position, Previous: t.Previous})
}

// fakeEvents requests quit on the quitAt-th poll (1-based), never when 0
type fakeEvents struct {
	log    *[]string
	polls  int
	quitAt int
}

func (f *fakeEvents) PollEvents() bool {
	f.polls++
	if f.log != nil {
		*f.log = append(*f.log, "poll")
	}
	return f.quitAt > 0 && f.polls >= f.quitAt
}

type fakeInput struct {
	log *[]string
	dts []float64
}

func (f *fakeInput) Sample(dt float64) {
	f.dts = append(f.dts, dt)
	if f.log != nil {
		*f.log = append(*f.log, "input")
	}
}

type fakeCloser struct {
	name string
	log  *[]string
	err  error
}

func (c *fakeCloser) Close() error {
	*c.log = append(*c.log, "close:"+c.name)
	return c.err
}

// testSettings gives 20ms frames and a 10ms fixed step: exactly two physics ticks per frame
func testSettings() Settings {
	return Settings{
		TargetFPS:      50,
		FixedDeltaTime: 0.01,
		Interpolation:  true,
		CheckTicking:   true,
	}
}

func newTestContext(surface Surface) (*GameContext, *MockTimeSource) {
	source := NewMockTimeSource(time.Unix(0, 0))
	ctx, err := NewGameContext(testSettings(), surface, source, nil)
	if err != nil {
		panic(err)
	}
	return ctx, source
}

func equalLogs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
