package engine

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// EntityState is the lifecycle position of an entity
type EntityState uint8

const (
	StateConstructed EntityState = iota
	StateSpawnPending
	StateInPlay
	StateExitPending
	StateDestroyed
)

func (s EntityState) String() string {
	switch s {
	case StateConstructed:
		return "Constructed"
	case StateSpawnPending:
		return "SpawnPending"
	case StateInPlay:
		return "InPlay"
	case StateExitPending:
		return "ExitPending"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Entity is an ordered collection of components plus identity and play state
//
// Components are kept sorted by priority, ties in insertion order. The list is
// copy-on-write so a component added or removed during dispatch does not
// disturb the phase already iterating
type Entity struct {
	id       uuid.UUID
	handle   Handle
	priority int
	ticking  bool
	state    EntityState

	destroyRequested bool

	transform  *TransformComponent
	components []Component
}

// NewEntity creates an entity with its built-in transform and optional initial components
// priority orders entities within each phase and is fixed for the entity's lifetime
func NewEntity(priority int, initial ...Component) *Entity {
	e := &Entity{
		id:       uuid.New(),
		handle:   InvalidHandle,
		priority: priority,
		ticking:  true,
		state:    StateConstructed,
	}
	e.transform = NewTransformComponent()
	e.AddComponent(e.transform)
	for _, c := range initial {
		e.AddComponent(c)
	}
	return e
}

// AddComponent inserts c after every component with priority <= its own
// On an in-play entity the component enters play immediately
func (e *Entity) AddComponent(c Component) {
	p := c.Priority()
	pos := len(e.components)
	for i, existing := range e.components {
		if existing.Priority() > p {
			pos = i
			break
		}
	}

	next := make([]Component, 0, len(e.components)+1)
	next = append(next, e.components[:pos]...)
	next = append(next, c)
	next = append(next, e.components[pos:]...)
	e.components = next

	c.Attach(e)
	if e.IsInPlay() {
		c.EnterPlay()
	}
}

// RemoveComponent removes c; on an in-play entity only c exits play
// The component receives no further hooks, including later ones in the current phase
func (e *Entity) RemoveComponent(c Component) error {
	if c == Component(e.transform) {
		return ErrTransformRequired
	}
	idx := slices.Index(e.components, c)
	if idx < 0 {
		return ErrComponentNotFound
	}

	next := make([]Component, 0, len(e.components)-1)
	next = append(next, e.components[:idx]...)
	next = append(next, e.components[idx+1:]...)
	e.components = next

	if e.IsInPlay() {
		c.ExitPlay()
	}
	// Detached: a phase already iterating the old list skips it
	c.Attach(nil)
	return nil
}

// Add attaches c to e and returns it with its concrete type
func Add[T Component](e *Entity, c T) T {
	e.AddComponent(c)
	return c
}

// GetComponent returns the first component of type T in priority order
func GetComponent[T any](e *Entity) (T, bool) {
	for _, c := range e.components {
		if typed, ok := c.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

// Components returns a copy of the ordered component list
func (e *Entity) Components() []Component {
	return slices.Clone(e.components)
}

func (e *Entity) ID() uuid.UUID                  { return e.id }
func (e *Entity) Handle() Handle                 { return e.handle }
func (e *Entity) Priority() int                  { return e.priority }
func (e *Entity) State() EntityState             { return e.state }
func (e *Entity) Transform() *TransformComponent { return e.transform }

// IsTicking reports whether the entity wants phase dispatch
func (e *Entity) IsTicking() bool { return e.ticking }

func (e *Entity) SetTicking(ticking bool) { e.ticking = ticking }

// IsInPlay is true between enterPlay and exitPlay, including while a destroy is pending
func (e *Entity) IsInPlay() bool {
	return e.state == StateInPlay || e.state == StateExitPending
}

func (e *Entity) String() string {
	return fmt.Sprintf("entity(%d prio=%d %s)", e.handle, e.priority, e.state)
}

func (e *Entity) enterPlay() {
	e.state = StateInPlay
	if e.destroyRequested {
		e.state = StateExitPending
	}
	for _, c := range e.components {
		c.EnterPlay()
	}
}

func (e *Entity) exitPlay() {
	e.state = StateDestroyed
	for _, c := range e.components {
		c.ExitPlay()
	}
}

func (e *Entity) tick(dt float64) {
	for _, c := range e.components {
		if c.Entity() == e {
			c.Tick(dt)
		}
	}
}

func (e *Entity) physicsTick(dt float64) {
	for _, c := range e.components {
		if c.Entity() == e {
			c.PhysicsTick(dt)
		}
	}
}

func (e *Entity) renderTick(dt float64) {
	for _, c := range e.components {
		if c.Entity() == e {
			c.RenderTick(dt)
		}
	}
}

// dispatchable gates phase dispatch: in-play always, ticking flag when checkTicking
func dispatchable(e *Entity, checkTicking bool) bool {
	return e.IsInPlay() && (!checkTicking || e.ticking)
}
