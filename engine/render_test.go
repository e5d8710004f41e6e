package engine

import (
	"testing"

	"github.com/lixenwraith/ninja-engine/vmath"
)

func TestRenderQueueFlushInterpolates(t *testing.T) {
	q := NewRenderQueue()
	surface := &fakeSurface{}

	q.Enqueue(DrawCommand{Drawable: fakeDrawable{}, Previous: vmath.V2(0, 0), Position: vmath.V2(10, 4)})
	q.Enqueue(DrawCommand{Drawable: fakeDrawable{}, Previous: vmath.V2(2, 2), Position: vmath.V2(2, 2)})

	if n := q.Flush(surface, 0.5); n != 2 {
		t.Errorf("Expected 2 blits, got %d", n)
	}
	if len(surface.blits) != 2 {
		t.Fatalf("Expected 2 blits recorded, got %d", len(surface.blits))
	}
	if surface.blits[0] != vmath.V2(5, 2) {
		t.Errorf("Expected halfway position (5,2), got %v", surface.blits[0])
	}
	if surface.blits[1] != vmath.V2(2, 2) {
		t.Errorf("Expected stationary position (2,2), got %v", surface.blits[1])
	}
	if q.Len() != 0 {
		t.Errorf("Expected empty queue after flush, got %d", q.Len())
	}
}

func TestRenderQueueFractionEndpoints(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		want     vmath.Vec2
	}{
		{"previous", 0, vmath.V2(1, 1)},
		{"current", 1, vmath.V2(3, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewRenderQueue()
			surface := &fakeSurface{}
			q.Enqueue(DrawCommand{Drawable: fakeDrawable{}, Previous: vmath.V2(1, 1), Position: vmath.V2(3, 5)})
			q.Flush(surface, tt.fraction)
			if surface.blits[0] != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, surface.blits[0])
			}
		})
	}
}

func TestRenderQueueSkipsNilDrawable(t *testing.T) {
	q := NewRenderQueue()
	surface := &fakeSurface{}
	q.Enqueue(DrawCommand{Position: vmath.V2(1, 1)})

	if n := q.Flush(surface, 1); n != 0 {
		t.Errorf("Expected nil drawable to be skipped, got %d blits", n)
	}
	if q.Len() != 0 {
		t.Errorf("Expected queue drained, got %d", q.Len())
	}
}

func TestRenderQueueDiscard(t *testing.T) {
	q := NewRenderQueue()
	q.Enqueue(DrawCommand{Drawable: fakeDrawable{}})
	q.Discard()
	surface := &fakeSurface{}
	q.Flush(surface, 1)
	if len(surface.blits) != 0 {
		t.Errorf("Expected discarded commands not to draw, got %d", len(surface.blits))
	}
}
