// Package evasion implements the hunter/prey pursuit engine: an occupancy
// grid mirrored by a list of straight walls, bounce movement for both agents,
// ray-cast wall construction and line-of-sight capture.
//
// The engine is deterministic and single-threaded. Every Game owns its grid,
// walls and agents outright; independent games share nothing.
package evasion

import (
	"fmt"

	"github.com/vovakirdan/evasion/internal/core"
)

// Point is an integer grid coordinate. X grows to the right, Y grows down.
// A Point is also used as a displacement when it holds a velocity.
type Point struct {
	X, Y int
}

// P is a convenience constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the component-wise sum of two points.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Neg returns the point mirrored through the origin.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Unit clamps each axis to {-1, 0, 1}.
func (p Point) Unit() Point {
	return Point{X: core.Clamp(p.X, -1, 1), Y: core.Clamp(p.Y, -1, 1)}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// PosVel is an agent's position together with its velocity.
type PosVel struct {
	Pos Point
	Vel Point
}
