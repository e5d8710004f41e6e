package input

import (
	"testing"

	"github.com/lixenwraith/ninja-engine/engine"
)

// keySet is a DeviceState backed by a set of held key names
type keySet map[string]bool

func (k keySet) IsDown(key string) bool { return k[key] }

func testMapping() Mapping {
	return Mapping{
		Axes: map[string]AxisMapping{
			"horizontal": {Positive: []string{"d", "right"}, Negative: []string{"a", "left"}},
			"vertical":   {Positive: []string{"s"}, Negative: []string{"w"}},
		},
		Actions: map[string][]string{
			"jump": {"space"},
			"fire": {"f"},
		},
	}
}

func collect(r *Router) *[]Event {
	var events []Event
	r.Hub().Subscribe(func(ev Event) { events = append(events, ev) })
	return &events
}

func TestRouterAxisValues(t *testing.T) {
	tests := []struct {
		name string
		held keySet
		want float64
	}{
		{"idle", keySet{}, 0},
		{"positive", keySet{"d": true}, 1},
		{"alternate positive", keySet{"right": true}, 1},
		{"negative", keySet{"a": true}, -1},
		{"both cancel", keySet{"a": true, "d": true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(tt.held, testMapping())
			r.Sample(0.016)
			if got := r.AxisValue("horizontal"); got != tt.want {
				t.Errorf("Expected horizontal %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRouterEmitsAxesEveryFrameInSortedOrder(t *testing.T) {
	held := keySet{}
	r := NewRouter(held, testMapping())
	events := collect(r)

	r.Sample(0.016)
	r.Sample(0.016)

	if len(*events) != 4 {
		t.Fatalf("Expected 2 axis events per frame, got %v", *events)
	}
	for i, want := range []string{"horizontal", "vertical", "horizontal", "vertical"} {
		ev := (*events)[i]
		if ev.Kind != EventAxis || ev.Name != want {
			t.Errorf("Event %d: expected axis %s, got %s %s", i, want, ev.Kind, ev.Name)
		}
	}
}

func TestRouterActionEdges(t *testing.T) {
	held := keySet{}
	r := NewRouter(held, Mapping{Actions: map[string][]string{"jump": {"space"}}})
	events := collect(r)

	r.Sample(0.016)
	if len(*events) != 0 {
		t.Fatalf("Expected no events while idle, got %v", *events)
	}

	held["space"] = true
	r.Sample(0.016)
	r.Sample(0.016)
	if len(*events) != 1 || (*events)[0].Kind != EventPressed || (*events)[0].Name != "jump" {
		t.Fatalf("Expected single pressed edge, got %v", *events)
	}
	if !r.IsActive("jump") {
		t.Error("Expected jump active while held")
	}

	held["space"] = false
	r.Sample(0.016)
	if len(*events) != 2 || (*events)[1].Kind != EventReleased {
		t.Errorf("Expected released edge, got %v", *events)
	}
	if r.IsActive("jump") {
		t.Error("Expected jump inactive after release")
	}
}

func TestRouterResetDropsHeldState(t *testing.T) {
	held := keySet{"space": true}
	r := NewRouter(held, Mapping{Actions: map[string][]string{"jump": {"space"}}})
	events := collect(r)
	r.Sample(0.016)
	r.Reset()
	r.Sample(0.016)

	if len(*events) != 2 || (*events)[1].Kind != EventPressed {
		t.Errorf("Expected fresh press after reset, got %v", *events)
	}
}

func TestRouterNilDeviceIsInert(t *testing.T) {
	r := NewRouter(nil, testMapping())
	events := collect(r)
	r.Sample(0.016)
	if len(*events) != 0 {
		t.Errorf("Expected no events without a device, got %v", *events)
	}
}

func TestRouterSatisfiesInputSampler(t *testing.T) {
	var _ engine.InputSampler = NewRouter(keySet{}, Mapping{})
}

func TestMappingKeys(t *testing.T) {
	keys := testMapping().Keys()
	seen := make(map[string]bool)
	for _, k := range keys {
		seen[k] = true
	}
	for _, want := range []string{"a", "d", "left", "right", "s", "w", "space", "f"} {
		if !seen[want] {
			t.Errorf("Expected key %q in mapping keys", want)
		}
	}
}
