package input

import "fmt"

// EventKind discriminates router events
type EventKind uint8

const (
	EventAxis     EventKind = iota // Continuous value, emitted every frame
	EventPressed                   // Action became active this frame
	EventReleased                  // Action became inactive this frame
)

func (k EventKind) String() string {
	switch k {
	case EventAxis:
		return "axis"
	case EventPressed:
		return "pressed"
	case EventReleased:
		return "released"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is broadcast by the Router once per axis per frame and once per action edge
type Event struct {
	Kind  EventKind
	Name  string
	Value float64 // Axis value in [-1, 1], zero for actions
}

// DeviceState reports the current raw key state, sampled once per frame
type DeviceState interface {
	IsDown(key string) bool
}

// AxisMapping lists the keys that drive an axis toward +1 and -1
type AxisMapping struct {
	Positive []string
	Negative []string
}

// Mapping is the key → axis/action name table, read from configuration
type Mapping struct {
	Axes    map[string]AxisMapping
	Actions map[string][]string
}

// Keys returns every key name referenced by the mapping, in no particular order
func (m Mapping) Keys() []string {
	var keys []string
	for _, a := range m.Axes {
		keys = append(keys, a.Positive...)
		keys = append(keys, a.Negative...)
	}
	for _, ks := range m.Actions {
		keys = append(keys, ks...)
	}
	return keys
}
