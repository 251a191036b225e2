package evasion

// Grid is the occupancy map of the board. Cells are stored row-major
// (index = y*W + x) as the number of walls covering them, so overlapping
// walls placed through AddWall stay consistent when one of them is removed.
type Grid struct {
	w, h  int
	cover []uint16
}

// NewGrid creates an empty w x h grid.
func NewGrid(w, h int) *Grid {
	return &Grid{
		w:     w,
		h:     h,
		cover: make([]uint16, w*h),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

func (g *Grid) index(p Point) int {
	return p.Y*g.w + p.X
}

// InBounds reports whether p addresses a cell on the board.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}

// Occupied reports whether p is blocked. Every off-board point is blocked.
func (g *Grid) Occupied(p Point) bool {
	if !g.InBounds(p) {
		return true
	}
	return g.cover[g.index(p)] > 0
}

// fits reports whether every cell of w lies on the board.
func (g *Grid) fits(w Wall) bool {
	return w.Valid() && w.Bounds().Within(g.w, g.h)
}

// mark adds one layer of coverage for every cell of w.
func (g *Grid) mark(w Wall) {
	for _, p := range w.Cells() {
		g.cover[g.index(p)]++
	}
}

// unmark removes one layer of coverage for every cell of w.
func (g *Grid) unmark(w Wall) {
	for _, p := range w.Cells() {
		if i := g.index(p); g.cover[i] > 0 {
			g.cover[i]--
		}
	}
}

// OccupiedCount returns the number of blocked on-board cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, c := range g.cover {
		if c > 0 {
			n++
		}
	}
	return n
}

// Matrix returns a fresh [y][x] copy of the occupancy flags.
func (g *Grid) Matrix() [][]bool {
	m := make([][]bool, g.h)
	for y := range m {
		row := make([]bool, g.w)
		for x := range row {
			row[x] = g.cover[y*g.w+x] > 0
		}
		m[y] = row
	}
	return m
}
