package evasion

import (
	"io"

	"github.com/charmbracelet/log"
)

// Game is one hunter/prey match. It owns the occupancy grid, the ordered
// wall list and both agents. All mutation happens inside Tick or the wall
// primitives; the zero value is not usable, construct with New.
type Game struct {
	cfg    Config
	grid   *Grid
	walls  []Wall
	hunter PosVel
	prey   Point

	tick      int
	wallTimer int

	built   int
	removed int

	logger *log.Logger
}

// Option configures a Game at construction.
type Option func(*Game)

// WithLogger reports wall construction and removal at debug level.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a game from cfg. It fails only when cfg is invalid.
func New(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:    cfg,
		grid:   NewGrid(cfg.BoardW, cfg.BoardH),
		hunter: cfg.Hunter,
		prey:   cfg.Prey,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Tick advances the game by one step and reports whether the hunter has
// captured the prey afterwards.
//
// Order: remove the listed walls, move the hunter, try to build at the
// hunter's pre-move cell, move the prey on odd ticks, advance the tick
// counter and the build cooldown, test capture.
func (g *Game) Tick(build BuildDirective, remove []int, preyMove Point) bool {
	g.RemoveWalls(remove)

	from := g.hunter.Pos
	g.hunter = g.Move(g.hunter)
	g.BuildWall(from, build)

	if g.CanPreyMove() {
		g.prey = g.Move(PosVel{Pos: g.prey, Vel: preyMove}).Pos
	}

	g.tick++
	if g.wallTimer > 0 {
		g.wallTimer--
	}

	return g.Captured()
}

// CanPreyMove reports whether the prey moves during the next Tick.
// The prey only moves on odd ticks.
func (g *Game) CanPreyMove() bool {
	return g.tick%2 != 0
}

// IsOccupied reports whether p is off the board or covered by a wall.
func (g *Game) IsOccupied(p Point) bool {
	return g.grid.Occupied(p)
}

// Captured reports whether the prey is within CaptureRange of the hunter
// with no blocked cell on the line between them.
func (g *Game) Captured() bool {
	if Distance(g.hunter.Pos, g.prey) > CaptureRange {
		return false
	}
	for _, p := range PointsBetween(g.hunter.Pos, g.prey) {
		if g.IsOccupied(p) {
			return false
		}
	}
	return true
}

// Config returns the construction parameters.
func (g *Game) Config() Config { return g.cfg }

// Hunter returns the hunter's position and velocity.
func (g *Game) Hunter() PosVel { return g.hunter }

// Prey returns the prey's position.
func (g *Game) Prey() Point { return g.prey }

// TickNum returns the number of completed ticks.
func (g *Game) TickNum() int { return g.tick }

// WallTimer returns the remaining build cooldown in ticks.
func (g *Game) WallTimer() int { return g.wallTimer }

// Distance returns the hunter-prey Euclidean distance.
func (g *Game) Distance() float64 { return Distance(g.hunter.Pos, g.prey) }

// WallCount returns the number of standing walls.
func (g *Game) WallCount() int { return len(g.walls) }

// WallsRemaining returns how many more walls fit in the budget.
func (g *Game) WallsRemaining() int { return g.cfg.MaxWalls - len(g.walls) }

// WallsBuilt returns the number of walls successfully added so far.
func (g *Game) WallsBuilt() int { return g.built }

// WallsRemoved returns the number of walls removed so far.
func (g *Game) WallsRemoved() int { return g.removed }

// Walls returns a copy of the wall list in removal-index order.
func (g *Game) Walls() []Wall {
	out := make([]Wall, len(g.walls))
	copy(out, g.walls)
	return out
}

// WallBoxes returns each wall's [left, right, top, bottom] box in list order.
func (g *Game) WallBoxes() [][4]int {
	boxes := make([][4]int, len(g.walls))
	for i, w := range g.walls {
		boxes[i] = w.Box()
	}
	return boxes
}

// Board returns a fresh [y][x] copy of the occupancy grid.
func (g *Game) Board() [][]bool {
	return g.grid.Matrix()
}
