package input

import "github.com/lixenwraith/ninja-engine/engine"

// Binding identifies one bound callback for later removal
type Binding struct {
	Kind EventKind
	Name string
	id   uint64
}

type axisHandler struct {
	id uint64
	fn func(value float64)
}

type actionHandler struct {
	id uint64
	fn func()
}

// InputComponent routes router events to per-name callback lists while its entity is in play
//
// Multiple callbacks per name are invoked in binding order and the same function
// bound twice runs twice. Lists are copy-on-write so a callback may bind or unbind
// during dispatch without affecting the event in flight
type InputComponent struct {
	engine.BaseComponent

	router *Router
	token  engine.Token
	subbed bool
	nextID uint64

	axes     map[string][]axisHandler
	pressed  map[string][]actionHandler
	released map[string][]actionHandler
}

// NewInputComponent creates an input component fed by router
func NewInputComponent(router *Router) *InputComponent {
	return &InputComponent{
		BaseComponent: engine.NewBaseComponent(engine.PriorityInput),
		router:        router,
		axes:          make(map[string][]axisHandler),
		pressed:       make(map[string][]actionHandler),
		released:      make(map[string][]actionHandler),
	}
}

// BindAxis registers fn for the named axis, creating the list on first use
func (c *InputComponent) BindAxis(name string, fn func(value float64)) Binding {
	c.nextID++
	list := c.axes[name]
	c.axes[name] = append(list[:len(list):len(list)], axisHandler{id: c.nextID, fn: fn})
	return Binding{Kind: EventAxis, Name: name, id: c.nextID}
}

// BindPressed registers fn for the named action's press edge
func (c *InputComponent) BindPressed(name string, fn func()) Binding {
	return c.bindAction(c.pressed, EventPressed, name, fn)
}

// BindReleased registers fn for the named action's release edge
func (c *InputComponent) BindReleased(name string, fn func()) Binding {
	return c.bindAction(c.released, EventReleased, name, fn)
}

func (c *InputComponent) bindAction(table map[string][]actionHandler, kind EventKind, name string, fn func()) Binding {
	c.nextID++
	list := table[name]
	table[name] = append(list[:len(list):len(list)], actionHandler{id: c.nextID, fn: fn})
	return Binding{Kind: kind, Name: name, id: c.nextID}
}

// Unbind removes a single binding
// Returns *engine.MissingBindingError when the binding is not present
func (c *InputComponent) Unbind(b Binding) error {
	switch b.Kind {
	case EventAxis:
		list, ok := removeByID(c.axes[b.Name], b.id, func(h axisHandler) uint64 { return h.id })
		if !ok {
			return &engine.MissingBindingError{Name: b.Name, Kind: "axis"}
		}
		setOrDelete(c.axes, b.Name, list)
	case EventPressed, EventReleased:
		table := c.pressed
		if b.Kind == EventReleased {
			table = c.released
		}
		list, ok := removeByID(table[b.Name], b.id, func(h actionHandler) uint64 { return h.id })
		if !ok {
			return &engine.MissingBindingError{Name: b.Name, Kind: "action"}
		}
		setOrDelete(table, b.Name, list)
	default:
		return &engine.MissingBindingError{Name: b.Name, Kind: b.Kind.String()}
	}
	return nil
}

// UnbindAxis removes every callback bound to the named axis
func (c *InputComponent) UnbindAxis(name string) error {
	if _, ok := c.axes[name]; !ok {
		return &engine.MissingBindingError{Name: name, Kind: "axis"}
	}
	delete(c.axes, name)
	return nil
}

// UnbindAction removes every press and release callback bound to the named action
func (c *InputComponent) UnbindAction(name string) error {
	_, p := c.pressed[name]
	_, r := c.released[name]
	if !p && !r {
		return &engine.MissingBindingError{Name: name, Kind: "action"}
	}
	delete(c.pressed, name)
	delete(c.released, name)
	return nil
}

// ClearBindings drops every axis and action binding
func (c *InputComponent) ClearBindings() {
	c.axes = make(map[string][]axisHandler)
	c.pressed = make(map[string][]actionHandler)
	c.released = make(map[string][]actionHandler)
}

// BindingCount returns the number of callbacks bound across all names
func (c *InputComponent) BindingCount() int {
	n := 0
	for _, l := range c.axes {
		n += len(l)
	}
	for _, l := range c.pressed {
		n += len(l)
	}
	for _, l := range c.released {
		n += len(l)
	}
	return n
}

func (c *InputComponent) EnterPlay() {
	if c.router == nil || c.subbed {
		return
	}
	c.token = c.router.Hub().Subscribe(c.dispatch)
	c.subbed = true
}

func (c *InputComponent) ExitPlay() {
	if !c.subbed {
		return
	}
	// Token came from our own Subscribe, removal cannot miss
	_ = c.router.Hub().Unsubscribe(c.token)
	c.subbed = false
}

func (c *InputComponent) dispatch(ev Event) {
	switch ev.Kind {
	case EventAxis:
		for _, h := range c.axes[ev.Name] {
			h.fn(ev.Value)
		}
	case EventPressed:
		for _, h := range c.pressed[ev.Name] {
			h.fn()
		}
	case EventReleased:
		for _, h := range c.released[ev.Name] {
			h.fn()
		}
	}
}

func removeByID[T any](list []T, id uint64, idOf func(T) uint64) ([]T, bool) {
	for i, h := range list {
		if idOf(h) == id {
			next := make([]T, 0, len(list)-1)
			next = append(next, list[:i]...)
			return append(next, list[i+1:]...), true
		}
	}
	return list, false
}

func setOrDelete[T any](table map[string][]T, name string, list []T) {
	if len(list) == 0 {
		delete(table, name)
		return
	}
	table[name] = list
}
