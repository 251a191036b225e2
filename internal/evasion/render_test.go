package evasion

import (
	"strings"
	"testing"

	"github.com/vovakirdan/evasion/internal/core"
)

func TestRenderBoard(t *testing.T) {
	cfg := testConfig(6, 3)
	cfg.Prey = P(5, 2)
	g := newTestGame(t, cfg)
	g.AddWall(VerticalWall(3, 0, 1))

	w, h := g.ScreenSize()
	if w != 6 || h != 4 {
		t.Fatalf("ScreenSize() = %dx%d, expected 6x4", w, h)
	}
	screen := core.NewScreen(w, h)
	g.Render(screen)

	expected := []string{
		"H  #  ",
		"   #  ",
		"     P",
	}
	for y, row := range expected {
		if got := screen.Row(y + 1); got != row {
			t.Errorf("board row %d = %q, expected %q", y, got, row)
		}
	}
	if c := screen.GetCell(0, 1); c.Color != core.ColorHunter {
		t.Errorf("hunter color = %v, expected %v", c.Color, core.ColorHunter)
	}
	if c := screen.GetCell(3, 1); c.Color != core.ColorWall {
		t.Errorf("wall color = %v, expected %v", c.Color, core.ColorWall)
	}
}

func TestRenderSightLine(t *testing.T) {
	cfg := testConfig(60, 3)
	cfg.Prey = P(2, 0)
	g := newTestGame(t, cfg)

	screen := core.NewScreen(g.ScreenSize())
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "CAPTURED") {
		t.Errorf("HUD = %q, expected a capture marker", screen.Row(0))
	}
	if got := screen.Row(1)[:3]; got != "H.P" {
		t.Errorf("sight line = %q, expected %q", got, "H.P")
	}
	if c := screen.GetCell(1, 1); c.Color != core.ColorCapture {
		t.Errorf("sight color = %v, expected %v", c.Color, core.ColorCapture)
	}
}
