package evasion

// Snapshot is a read-only copy of the game state after a tick. Policies act
// on it, the exporter serialises it, and tests compare it for determinism.
type Snapshot struct {
	Tick           int
	WallTimer      int
	MaxWalls       int
	BoardW         int
	BoardH         int
	Hunter         PosVel
	Prey           Point
	Walls          []Wall
	Distance       float64
	Captured       bool
	PreyMovesNext  bool
	WallsRemaining int
}

// Snapshot returns the current state. The wall slice is a copy.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:           g.tick,
		WallTimer:      g.wallTimer,
		MaxWalls:       g.cfg.MaxWalls,
		BoardW:         g.cfg.BoardW,
		BoardH:         g.cfg.BoardH,
		Hunter:         g.hunter,
		Prey:           g.prey,
		Walls:          g.Walls(),
		Distance:       g.Distance(),
		Captured:       g.Captured(),
		PreyMovesNext:  g.CanPreyMove(),
		WallsRemaining: g.WallsRemaining(),
	}
}

// CanBuild reports whether the budget and cooldown would admit a wall now.
func (s Snapshot) CanBuild() bool {
	return s.WallsRemaining > 0 && s.WallTimer <= 0
}

// Equal compares two snapshots field by field, walls included.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Tick != o.Tick || s.WallTimer != o.WallTimer || s.MaxWalls != o.MaxWalls ||
		s.BoardW != o.BoardW || s.BoardH != o.BoardH ||
		s.Hunter != o.Hunter || s.Prey != o.Prey ||
		s.Distance != o.Distance || s.Captured != o.Captured ||
		s.PreyMovesNext != o.PreyMovesNext || s.WallsRemaining != o.WallsRemaining {
		return false
	}
	if len(s.Walls) != len(o.Walls) {
		return false
	}
	for i := range s.Walls {
		if s.Walls[i] != o.Walls[i] {
			return false
		}
	}
	return true
}

// Occupied reports whether p is off the board or covered by one of the
// snapshot's walls.
func (s Snapshot) Occupied(p Point) bool {
	if p.X < 0 || p.X >= s.BoardW || p.Y < 0 || p.Y >= s.BoardH {
		return true
	}
	for _, w := range s.Walls {
		if w.Covers(p) {
			return true
		}
	}
	return false
}
