package vmath

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for approximate float comparison
const Epsilon = 1e-5

// Vec2 is an immutable float64 2D vector, passed by value
// Screen space: X grows right, Y grows down
type Vec2 struct {
	X, Y float64
}

var (
	Zero  = Vec2{0, 0}
	One   = Vec2{1, 1}
	Left  = Vec2{-1, 0}
	Right = Vec2{1, 0}
	Up    = Vec2{0, -1}
	Down  = Vec2{0, 1}
)

func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Div divides both axes by s, zero divisor yields Zero
func (v Vec2) Div(s float64) Vec2 {
	if s == 0 {
		return Zero
	}
	return Vec2{v.X / s, v.Y / s}
}

func (v Vec2) MagnitudeSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Magnitude() float64 {
	return math.Sqrt(v.MagnitudeSq())
}

// Normalized returns the unit vector, zero-safe
func (v Vec2) Normalized() Vec2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Zero
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// Lerp returns v + (to - v) * t
// t is not clamped; callers pass interpolation fractions already in [0, 1]
func (v Vec2) Lerp(to Vec2, t float64) Vec2 {
	return Vec2{
		X: v.X + (to.X-v.X)*t,
		Y: v.Y + (to.Y-v.Y)*t,
	}
}

// ApproxEqual compares both axes within Epsilon
func (v Vec2) ApproxEqual(o Vec2) bool {
	return math.Abs(v.X-o.X) <= Epsilon && math.Abs(v.Y-o.Y) <= Epsilon
}

// Round returns integer cell coordinates, nearest cell
func (v Vec2) Round() (int, int) {
	return int(math.Round(v.X)), int(math.Round(v.Y))
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}
