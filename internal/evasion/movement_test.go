package evasion

import (
	"testing"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		walls    []Wall
		in       PosVel
		expected PosVel
	}{
		{
			name:     "open diagonal",
			in:       PosVel{Pos: P(5, 5), Vel: P(1, 1)},
			expected: PosVel{Pos: P(6, 6), Vel: P(1, 1)},
		},
		{
			name:     "velocity clamped",
			in:       PosVel{Pos: P(5, 5), Vel: P(3, -7)},
			expected: PosVel{Pos: P(6, 4), Vel: P(1, -1)},
		},
		{
			name:     "standing still",
			in:       PosVel{Pos: P(5, 5), Vel: P(0, 0)},
			expected: PosVel{Pos: P(5, 5), Vel: P(0, 0)},
		},
		{
			name:     "axial into right edge",
			in:       PosVel{Pos: P(9, 5), Vel: P(1, 0)},
			expected: PosVel{Pos: P(9, 5), Vel: P(-1, 0)},
		},
		{
			name:     "axial into top edge",
			in:       PosVel{Pos: P(5, 0), Vel: P(0, -1)},
			expected: PosVel{Pos: P(5, 0), Vel: P(0, 1)},
		},
		{
			name:     "into board corner",
			in:       PosVel{Pos: P(9, 9), Vel: P(1, 1)},
			expected: PosVel{Pos: P(9, 9), Vel: P(-1, -1)},
		},
		{
			name:     "into origin corner",
			in:       PosVel{Pos: P(0, 0), Vel: P(-1, -1)},
			expected: PosVel{Pos: P(0, 0), Vel: P(1, 1)},
		},
		{
			name:     "slide down the right edge",
			in:       PosVel{Pos: P(9, 5), Vel: P(1, 1)},
			expected: PosVel{Pos: P(9, 6), Vel: P(-1, 1)},
		},
		{
			name:     "slide along the bottom edge",
			in:       PosVel{Pos: P(5, 9), Vel: P(1, 1)},
			expected: PosVel{Pos: P(6, 9), Vel: P(1, -1)},
		},
		{
			name:     "lone corner cell",
			walls:    []Wall{HorizontalWall(6, 6, 6)},
			in:       PosVel{Pos: P(5, 5), Vel: P(1, 1)},
			expected: PosVel{Pos: P(5, 5), Vel: P(-1, -1)},
		},
		{
			name:     "corner of a vertical wall",
			walls:    []Wall{VerticalWall(6, 6, 7)},
			in:       PosVel{Pos: P(5, 5), Vel: P(1, 1)},
			expected: PosVel{Pos: P(5, 6), Vel: P(-1, 1)},
		},
		{
			name:     "corner of a horizontal wall",
			walls:    []Wall{HorizontalWall(6, 6, 7)},
			in:       PosVel{Pos: P(5, 5), Vel: P(1, 1)},
			expected: PosVel{Pos: P(6, 5), Vel: P(1, -1)},
		},
		{
			name:     "inside corner of an L",
			walls:    []Wall{HorizontalWall(6, 6, 7), VerticalWall(6, 7, 7)},
			in:       PosVel{Pos: P(5, 5), Vel: P(1, 1)},
			expected: PosVel{Pos: P(5, 5), Vel: P(-1, -1)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(10, 10)
			cfg.Prey = P(0, 9)
			g := newTestGame(t, cfg)
			for _, w := range tc.walls {
				if !g.AddWall(w) {
					t.Fatalf("AddWall(%v) rejected", w)
				}
			}

			result := g.Move(tc.in)
			if result != tc.expected {
				t.Errorf("Move(%+v) = %+v, expected %+v", tc.in, result, tc.expected)
			}
		})
	}
}

func TestMoveBouncesOutOfCorner(t *testing.T) {
	g := newTestGame(t, testConfig(10, 10))
	pv := PosVel{Pos: P(0, 0), Vel: P(1, 1)}

	for i := 0; i < 9; i++ {
		pv = g.Move(pv)
	}
	if pv.Pos != P(9, 9) {
		t.Fatalf("after 9 moves at %v, expected (9,9)", pv.Pos)
	}

	pv = g.Move(pv)
	if pv != (PosVel{Pos: P(9, 9), Vel: P(-1, -1)}) {
		t.Fatalf("corner bounce gave %+v", pv)
	}

	pv = g.Move(pv)
	if pv.Pos != P(8, 8) {
		t.Errorf("after bounce at %v, expected (8,8)", pv.Pos)
	}
}

func TestMoveNeverEntersBlockedCell(t *testing.T) {
	cfg := testConfig(13, 9)
	cfg.Prey = P(12, 0)
	g := newTestGame(t, cfg)
	for _, w := range []Wall{
		HorizontalWall(4, 2, 8),
		VerticalWall(10, 1, 6),
		HorizontalWall(7, 5, 5),
	} {
		if !g.AddWall(w) {
			t.Fatalf("AddWall(%v) rejected", w)
		}
	}

	for _, vel := range []Point{P(1, 1), P(-1, 1), P(1, 0), P(0, -1)} {
		pv := PosVel{Pos: P(0, 0), Vel: vel}
		for i := 0; i < 2000; i++ {
			pv = g.Move(pv)
			if g.IsOccupied(pv.Pos) {
				t.Fatalf("start velocity %v: step %d entered blocked cell %v", vel, i, pv.Pos)
			}
		}
	}
}
