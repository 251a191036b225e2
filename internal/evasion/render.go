package evasion

import (
	"fmt"

	"github.com/vovakirdan/evasion/internal/core"
)

// hudRows is the number of screen rows above the board.
const hudRows = 1

// Render draws the HUD and the board into dst. Row 0 holds the HUD; board
// cell (x, y) lands at screen (x, y+1). Anything past the screen is clipped.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	hud := fmt.Sprintf(" tick %d  walls %d/%d  cooldown %d  dist %.1f",
		g.tick, len(g.walls), g.cfg.MaxWalls, g.wallTimer, g.Distance())
	captured := g.Captured()
	if captured {
		hud += "  CAPTURED"
	}
	dst.DrawTextColored(0, 0, hud, core.ColorHUD)

	for _, w := range g.walls {
		r := w.Bounds()
		r.Y += hudRows
		dst.DrawRect(r, '#', core.ColorWall)
	}

	if g.Distance() <= CaptureRange {
		color := core.ColorSight
		if captured {
			color = core.ColorCapture
		}
		for _, p := range PointsBetween(g.hunter.Pos, g.prey) {
			if !g.IsOccupied(p) {
				dst.SetColored(p.X, p.Y+hudRows, '.', color)
			}
		}
	}

	dst.SetColored(g.prey.X, g.prey.Y+hudRows, 'P', core.ColorPrey)
	dst.SetColored(g.hunter.Pos.X, g.hunter.Pos.Y+hudRows, 'H', core.ColorHunter)
}

// ScreenSize returns the screen dimensions needed to show the whole board.
func (g *Game) ScreenSize() (w, h int) {
	return g.cfg.BoardW, g.cfg.BoardH + hudRows
}
