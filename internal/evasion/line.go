package evasion

import (
	"math"

	"github.com/vovakirdan/evasion/internal/core"
)

// CaptureRange is the maximum Euclidean distance at which the hunter can
// capture the prey.
const CaptureRange = 4.0

// PointsBetween returns the 8-connected Bresenham line between a and b,
// endpoints included.
//
// Steep lines are traced along Y, and the driving axis always runs from the
// lower to the higher coordinate, so the result may start at b. The minor axis
// advances only when the error term drops strictly below zero; occlusion
// checks depend on exactly which cells this samples.
func PointsBetween(a, b Point) []Point {
	x0, y0, x1, y1 := a.X, a.Y, b.X, b.Y

	steep := core.Abs(y1-y0) > core.Abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	deltaX := x1 - x0
	deltaY := core.Abs(y1 - y0)
	errTerm := deltaX / 2
	yStep := -1
	if y0 < y1 {
		yStep = 1
	}

	points := make([]Point, 0, deltaX+1)
	y := y0
	for x := x0; x <= x1; x++ {
		if steep {
			points = append(points, Point{X: y, Y: x})
		} else {
			points = append(points, Point{X: x, Y: y})
		}
		errTerm -= deltaY
		if errTerm < 0 {
			y += yStep
			errTerm += deltaX
		}
	}
	return points
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
