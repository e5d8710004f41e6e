package engine

import "github.com/lixenwraith/ninja-engine/vmath"

// Priority orders components within an entity. Lower values run first
// A component's priority is fixed at construction; the entity's sorted
// component list depends on it never changing
type Priority int

// Standard priority bands
const (
	PriorityInput     Priority = -150
	PriorityTransform Priority = -100
	PriorityDefault   Priority = 0
	PriorityRender    Priority = 100
)

// Component is a unit of entity behavior dispatched once per phase
//
// Attach is invoked by the owning Entity when the component is added and
// must not be called directly. Hooks receive phase delta time in seconds
type Component interface {
	Priority() Priority
	Attach(owner *Entity)
	Entity() *Entity

	EnterPlay()
	ExitPlay()
	Tick(dt float64)
	PhysicsTick(dt float64)
	RenderTick(dt float64)
}

// BaseComponent supplies priority storage, the owner back-reference and no-op hooks
// Embed it and override the hooks a component needs
type BaseComponent struct {
	priority Priority
	owner    *Entity
}

// NewBaseComponent fixes the component priority
func NewBaseComponent(priority Priority) BaseComponent {
	return BaseComponent{priority: priority}
}

func (b *BaseComponent) Priority() Priority { return b.priority }

func (b *BaseComponent) Attach(owner *Entity) { b.owner = owner }

// Entity returns the owning entity, nil before the component is added
func (b *BaseComponent) Entity() *Entity { return b.owner }

func (b *BaseComponent) EnterPlay()          {}
func (b *BaseComponent) ExitPlay()           {}
func (b *BaseComponent) Tick(float64)        {}
func (b *BaseComponent) PhysicsTick(float64) {}
func (b *BaseComponent) RenderTick(float64)  {}

// TransformComponent holds the entity position and the position at the start
// of the latest physics step, the pair the renderer interpolates between
type TransformComponent struct {
	BaseComponent
	Position vmath.Vec2
	Previous vmath.Vec2
}

func NewTransformComponent() *TransformComponent {
	return &TransformComponent{BaseComponent: NewBaseComponent(PriorityTransform)}
}

// PhysicsTick snapshots the position before lower-priority physics components integrate
func (t *TransformComponent) PhysicsTick(float64) {
	t.Previous = t.Position
}

// Teleport moves without interpolation
func (t *TransformComponent) Teleport(pos vmath.Vec2) {
	t.Position = pos
	t.Previous = pos
}
