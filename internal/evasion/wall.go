package evasion

import (
	"fmt"

	"github.com/vovakirdan/evasion/internal/core"
)

// WallKind tags the two wall shapes.
type WallKind uint8

const (
	Horizontal WallKind = iota + 1
	Vertical
)

// String returns the wall kind name.
func (k WallKind) String() string {
	switch k {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Wall is a one-cell-thick straight segment. A horizontal wall sits on row
// Line and spans columns [From, To]; a vertical wall sits on column Line and
// spans rows [From, To]. Both ends are inclusive. Walls are values and never
// change once built.
type Wall struct {
	Kind WallKind
	Line int
	From int
	To   int
}

// HorizontalWall creates a wall on row y covering columns l through r.
func HorizontalWall(y, l, r int) Wall {
	return Wall{Kind: Horizontal, Line: y, From: l, To: r}
}

// VerticalWall creates a wall on column x covering rows t through b.
func VerticalWall(x, t, b int) Wall {
	return Wall{Kind: Vertical, Line: x, From: t, To: b}
}

// Left returns the leftmost covered column.
func (w Wall) Left() int {
	if w.Kind == Horizontal {
		return w.From
	}
	return w.Line
}

// Right returns the rightmost covered column.
func (w Wall) Right() int {
	if w.Kind == Horizontal {
		return w.To
	}
	return w.Line
}

// Top returns the topmost covered row.
func (w Wall) Top() int {
	if w.Kind == Vertical {
		return w.From
	}
	return w.Line
}

// Bottom returns the bottommost covered row.
func (w Wall) Bottom() int {
	if w.Kind == Vertical {
		return w.To
	}
	return w.Line
}

// Box returns the inclusive bounding box as [left, right, top, bottom].
func (w Wall) Box() [4]int {
	return [4]int{w.Left(), w.Right(), w.Top(), w.Bottom()}
}

// Bounds returns the covered cells as a rectangle.
func (w Wall) Bounds() core.Rect {
	return core.RectFromCorners(w.Left(), w.Top(), w.Right(), w.Bottom())
}

// Len returns the number of covered cells, or 0 for a reversed span.
func (w Wall) Len() int {
	if w.To < w.From {
		return 0
	}
	return w.To - w.From + 1
}

// Valid reports whether the wall has a known kind and a non-empty span.
func (w Wall) Valid() bool {
	return (w.Kind == Horizontal || w.Kind == Vertical) && w.From <= w.To
}

// Covers reports whether p is one of the wall's cells.
func (w Wall) Covers(p Point) bool {
	return w.Valid() && w.Bounds().Contains(p.X, p.Y)
}

// Cells returns every covered cell in ascending order along the span.
func (w Wall) Cells() []Point {
	cells := make([]Point, 0, w.Len())
	for i := w.From; i <= w.To; i++ {
		if w.Kind == Horizontal {
			cells = append(cells, Point{X: i, Y: w.Line})
		} else {
			cells = append(cells, Point{X: w.Line, Y: i})
		}
	}
	return cells
}

// String returns a compact description such as "H(y=5, 0..9)".
func (w Wall) String() string {
	switch w.Kind {
	case Horizontal:
		return fmt.Sprintf("H(y=%d, %d..%d)", w.Line, w.From, w.To)
	case Vertical:
		return fmt.Sprintf("V(x=%d, %d..%d)", w.Line, w.From, w.To)
	default:
		return "Wall(?)"
	}
}
