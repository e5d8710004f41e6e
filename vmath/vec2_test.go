package vmath

import (
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	a := V2(3, 4)
	b := V2(1, -2)

	if got := a.Add(b); got != V2(4, 2) {
		t.Errorf("Add: expected (4, 2), got %v", got)
	}
	if got := a.Sub(b); got != V2(2, 6) {
		t.Errorf("Sub: expected (2, 6), got %v", got)
	}
	if got := a.Scale(2); got != V2(6, 8) {
		t.Errorf("Scale: expected (6, 8), got %v", got)
	}
	if got := a.Div(0); got != Zero {
		t.Errorf("Div by zero: expected Zero, got %v", got)
	}
	if got := a.Magnitude(); got != 5 {
		t.Errorf("Magnitude: expected 5, got %f", got)
	}
}

func TestVec2Normalized(t *testing.T) {
	n := V2(3, 4).Normalized()
	if math.Abs(n.Magnitude()-1) > Epsilon {
		t.Errorf("Expected unit length, got %f", n.Magnitude())
	}
	if Zero.Normalized() != Zero {
		t.Error("Expected zero vector to normalize to zero")
	}
}

func TestVec2Lerp(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec2
		t        float64
		want     Vec2
	}{
		{"start", V2(0, 0), V2(10, 20), 0, V2(0, 0)},
		{"end", V2(0, 0), V2(10, 20), 1, V2(10, 20)},
		{"middle", V2(0, 0), V2(10, 20), 0.5, V2(5, 10)},
		{"negative direction", V2(10, 10), V2(0, 0), 0.6, V2(4, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.Lerp(tt.to, tt.t)
			if !got.ApproxEqual(tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 {
		t.Error("Expected upper clamp")
	}
	if Clamp(-1.5, 0.0, 3.0) != 0 {
		t.Error("Expected lower clamp")
	}
	if Clamp(2, 0, 3) != 2 {
		t.Error("Expected value unchanged inside range")
	}
}
