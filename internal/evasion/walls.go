package evasion

import (
	"errors"
	"fmt"
	"strings"
)

// BuildDirective is the hunter's per-tick wall choice.
type BuildDirective int

const (
	BuildNone BuildDirective = iota
	BuildHorizontal
	BuildVertical
)

// String returns the directive name.
func (d BuildDirective) String() string {
	switch d {
	case BuildNone:
		return "none"
	case BuildHorizontal:
		return "horizontal"
	case BuildVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// ParseBuildDirective accepts "none", "horizontal"/"h" and "vertical"/"v".
func ParseBuildDirective(s string) (BuildDirective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "n":
		return BuildNone, nil
	case "horizontal", "h":
		return BuildHorizontal, nil
	case "vertical", "v":
		return BuildVertical, nil
	}
	return BuildNone, fmt.Errorf("evasion: unknown build directive %q", s)
}

var (
	errWallBudget   = errors.New("wall budget exhausted")
	errWallCooldown = errors.New("wall placement cooling down")
	errWallShape    = errors.New("wall span empty or off board")
	errWallBlocked  = errors.New("agent in the way")
)

// AddWall places w if the budget and cooldown allow it. On success the wall is
// appended to the list, its cells are marked occupied and the cooldown
// restarts. A rejected wall leaves the game untouched.
func (g *Game) AddWall(w Wall) bool {
	if err := g.admit(w); err != nil {
		g.logger.Debug("wall rejected", "wall", w, "reason", err, "tick", g.tick)
		return false
	}

	g.walls = append(g.walls, w)
	g.grid.mark(w)
	g.wallTimer = g.cfg.WallPlacementDelay
	g.built++

	g.logger.Debug("wall built", "wall", w, "budget", g.WallsRemaining(), "tick", g.tick)
	return true
}

func (g *Game) admit(w Wall) error {
	if !g.grid.fits(w) {
		return errWallShape
	}
	if len(g.walls) >= g.cfg.MaxWalls {
		return errWallBudget
	}
	if g.wallTimer > 0 {
		return errWallCooldown
	}
	return nil
}

// RemoveWalls deletes every wall whose index is listed. Indices refer to the
// list as it stood when the call began; the survivors keep their relative
// order and are renumbered from zero. Indices that address no wall are
// ignored.
func (g *Game) RemoveWalls(indices []int) {
	if len(indices) == 0 || len(g.walls) == 0 {
		return
	}

	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(g.walls) {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return
	}

	kept := make([]Wall, 0, len(g.walls)-len(drop))
	for i, w := range g.walls {
		if drop[i] {
			g.grid.unmark(w)
			g.removed++
			g.logger.Debug("wall removed", "wall", w, "tick", g.tick)
			continue
		}
		kept = append(kept, w)
	}
	g.walls = kept
}

// BuildWall ray-casts a wall through from along the directive's axis. The
// scan runs both ways until it meets a blocked cell; the wall fills the open
// span in between. The build fails if either scan crosses the hunter or the
// prey, or if AddWall rejects the result.
func (g *Game) BuildWall(from Point, d BuildDirective) bool {
	var w Wall
	switch d {
	case BuildHorizontal:
		lo, hi, err := g.castRay(from, P(1, 0))
		if err != nil {
			g.logger.Debug("wall rejected", "from", from, "dir", d, "reason", err, "tick", g.tick)
			return false
		}
		w = HorizontalWall(from.Y, lo.X+1, hi.X-1)
	case BuildVertical:
		lo, hi, err := g.castRay(from, P(0, 1))
		if err != nil {
			g.logger.Debug("wall rejected", "from", from, "dir", d, "reason", err, "tick", g.tick)
			return false
		}
		w = VerticalWall(from.X, lo.Y+1, hi.Y-1)
	default:
		return false
	}
	return g.AddWall(w)
}

// castRay walks from `from` in +step and -step until each side hits a blocked
// cell and returns the two stopping cells. The scan always terminates because
// off-board cells are blocked.
func (g *Game) castRay(from, step Point) (lesser, greater Point, err error) {
	greater = from
	for !g.IsOccupied(greater) {
		if g.isAgent(greater) {
			return from, from, errWallBlocked
		}
		greater = greater.Add(step)
	}

	lesser = from
	back := step.Neg()
	for !g.IsOccupied(lesser) {
		if g.isAgent(lesser) {
			return from, from, errWallBlocked
		}
		lesser = lesser.Add(back)
	}
	return lesser, greater, nil
}

func (g *Game) isAgent(p Point) bool {
	return p == g.hunter.Pos || p == g.prey
}

// HunterAction is everything the hunter decides in one tick: an optional
// wall to build and the indices of walls to tear down first.
type HunterAction struct {
	Build  BuildDirective
	Remove []int
}

// Apply runs one Tick with the hunter's action.
func (g *Game) Apply(a HunterAction, preyMove Point) bool {
	return g.Tick(a.Build, a.Remove, preyMove)
}
