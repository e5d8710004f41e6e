package input

import (
	"maps"
	"slices"

	"github.com/lixenwraith/ninja-engine/engine"
)

// Router translates raw device state into named axis and action events
// Axis names and action names are visited in sorted order so event order is deterministic
type Router struct {
	device DeviceState
	hub    *engine.Hub[Event]

	axes    map[string]AxisMapping
	actions map[string][]string

	axisNames   []string
	actionNames []string

	axisValues map[string]float64
	active     map[string]bool
}

// NewRouter creates a router sampling device through mapping
func NewRouter(device DeviceState, mapping Mapping) *Router {
	r := &Router{
		device:     device,
		hub:        engine.NewHub[Event](),
		axes:       make(map[string]AxisMapping, len(mapping.Axes)),
		actions:    make(map[string][]string, len(mapping.Actions)),
		axisValues: make(map[string]float64, len(mapping.Axes)),
		active:     make(map[string]bool, len(mapping.Actions)),
	}
	maps.Copy(r.axes, mapping.Axes)
	maps.Copy(r.actions, mapping.Actions)
	r.axisNames = slices.Sorted(maps.Keys(r.axes))
	r.actionNames = slices.Sorted(maps.Keys(r.actions))
	return r
}

// Hub returns the broadcaster InputComponents subscribe to
func (r *Router) Hub() *engine.Hub[Event] {
	return r.hub
}

// Sample reads device state and publishes events: every axis first, then action edges
func (r *Router) Sample(dt float64) {
	if r.device == nil {
		return
	}

	for _, name := range r.axisNames {
		m := r.axes[name]
		value := 0.0
		if r.anyDown(m.Positive) {
			value += 1
		}
		if r.anyDown(m.Negative) {
			value -= 1
		}
		r.axisValues[name] = value
		r.hub.Publish(Event{Kind: EventAxis, Name: name, Value: value})
	}

	for _, name := range r.actionNames {
		now := r.anyDown(r.actions[name])
		was := r.active[name]
		switch {
		case now && !was:
			r.hub.Publish(Event{Kind: EventPressed, Name: name})
		case !now && was:
			r.hub.Publish(Event{Kind: EventReleased, Name: name})
		}
		r.active[name] = now
	}
}

// AxisValue returns the value of the named axis from the latest sample
func (r *Router) AxisValue(name string) float64 {
	return r.axisValues[name]
}

// IsActive reports whether the named action was held at the latest sample
func (r *Router) IsActive(name string) bool {
	return r.active[name]
}

// Reset forgets held actions without publishing releases
func (r *Router) Reset() {
	clear(r.active)
	clear(r.axisValues)
}

func (r *Router) anyDown(keys []string) bool {
	for _, k := range keys {
		if r.device.IsDown(k) {
			return true
		}
	}
	return false
}
