package policies

import (
	"testing"

	"github.com/vovakirdan/evasion/internal/evasion"
	"github.com/vovakirdan/evasion/internal/registry"
)

func snapshot(hunter evasion.PosVel, prey evasion.Point) evasion.Snapshot {
	return evasion.Snapshot{
		BoardW:         10,
		BoardH:         10,
		MaxWalls:       3,
		Hunter:         hunter,
		Prey:           prey,
		WallsRemaining: 3,
	}
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{"idle", "random", "boxer"} {
		h, err := registry.CreateHunter(id)
		if err != nil {
			t.Errorf("CreateHunter(%q) error = %v", id, err)
			continue
		}
		if h.ID() != id {
			t.Errorf("CreateHunter(%q).ID() = %q", id, h.ID())
		}
	}
	for _, id := range []string{"drift", "still", "flee"} {
		p, err := registry.CreatePrey(id)
		if err != nil {
			t.Errorf("CreatePrey(%q) error = %v", id, err)
			continue
		}
		if p.ID() != id {
			t.Errorf("CreatePrey(%q).ID() = %q", id, p.ID())
		}
	}
}

func TestIdleNeverBuilds(t *testing.T) {
	s := snapshot(evasion.PosVel{Pos: evasion.P(1, 1), Vel: evasion.P(1, 1)}, evasion.P(5, 5))
	a := (&Idle{}).Act(s)
	if a.Build != evasion.BuildNone || len(a.Remove) != 0 {
		t.Errorf("Act() = %+v, expected the empty action", a)
	}
}

func TestRandomReproducible(t *testing.T) {
	a, b := NewRandom(), NewRandom()
	a.Reset(42)
	b.Reset(42)

	s := snapshot(evasion.PosVel{Pos: evasion.P(1, 1), Vel: evasion.P(1, 1)}, evasion.P(5, 5))
	s.WallsRemaining = 0
	s.Walls = []evasion.Wall{evasion.HorizontalWall(0, 0, 2), evasion.HorizontalWall(2, 0, 2), evasion.HorizontalWall(4, 0, 2)}

	for i := 0; i < 50; i++ {
		x, y := a.Act(s), b.Act(s)
		if x.Build != y.Build || len(x.Remove) != 1 || len(y.Remove) != 1 || x.Remove[0] != y.Remove[0] {
			t.Fatalf("step %d: %+v != %+v", i, x, y)
		}
		if x.Remove[0] < 0 || x.Remove[0] >= len(s.Walls) {
			t.Fatalf("step %d: removal index %d out of range", i, x.Remove[0])
		}
	}
}

func TestRandomKeepsWallsUnderBudget(t *testing.T) {
	r := NewRandom()
	r.Reset(7)
	s := snapshot(evasion.PosVel{Pos: evasion.P(1, 1), Vel: evasion.P(1, 1)}, evasion.P(5, 5))
	s.Walls = []evasion.Wall{evasion.HorizontalWall(0, 0, 2)}
	s.WallsRemaining = 2

	for i := 0; i < 20; i++ {
		if a := r.Act(s); len(a.Remove) != 0 {
			t.Fatalf("step %d: removed %v with budget left", i, a.Remove)
		}
	}
}

func TestBoxerDirective(t *testing.T) {
	diag := evasion.P(1, 1)
	tests := []struct {
		name     string
		hunter   evasion.PosVel
		prey     evasion.Point
		timer    int
		expected evasion.BuildDirective
	}{
		{"closing on both, wider in x", evasion.PosVel{Pos: evasion.P(1, 1), Vel: diag}, evasion.P(8, 3), 0, evasion.BuildVertical},
		{"closing on both, wider in y", evasion.PosVel{Pos: evasion.P(1, 1), Vel: diag}, evasion.P(3, 8), 0, evasion.BuildHorizontal},
		{"closing on y only", evasion.PosVel{Pos: evasion.P(5, 1), Vel: diag}, evasion.P(2, 8), 0, evasion.BuildHorizontal},
		{"moving away", evasion.PosVel{Pos: evasion.P(5, 5), Vel: diag}, evasion.P(2, 2), 0, evasion.BuildNone},
		{"prey on the hunter's column", evasion.PosVel{Pos: evasion.P(5, 1), Vel: diag}, evasion.P(5, 0), 0, evasion.BuildNone},
		{"cooling down", evasion.PosVel{Pos: evasion.P(1, 1), Vel: diag}, evasion.P(8, 3), 4, evasion.BuildNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := snapshot(tc.hunter, tc.prey)
			s.WallTimer = tc.timer
			if a := (&Boxer{}).Act(s); a.Build != tc.expected {
				t.Errorf("Act().Build = %v, expected %v", a.Build, tc.expected)
			}
		})
	}
}

func TestBoxerRecyclesOldestWall(t *testing.T) {
	s := snapshot(evasion.PosVel{Pos: evasion.P(1, 1), Vel: evasion.P(1, 1)}, evasion.P(8, 3))
	s.Walls = []evasion.Wall{evasion.HorizontalWall(9, 0, 9), evasion.VerticalWall(9, 0, 8), evasion.HorizontalWall(0, 3, 9)}
	s.WallsRemaining = 0

	a := (&Boxer{}).Act(s)
	if len(a.Remove) != 1 || a.Remove[0] != 0 {
		t.Errorf("Act().Remove = %v, expected [0]", a.Remove)
	}
}

func TestBoxerBuildsInGame(t *testing.T) {
	cfg := evasion.Config{
		BoardW:             60,
		BoardH:             40,
		MaxWalls:           4,
		WallPlacementDelay: 5,
		Hunter:             evasion.PosVel{Pos: evasion.P(0, 0), Vel: evasion.P(1, 1)},
		Prey:               evasion.P(45, 30),
	}
	g, err := evasion.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	boxer, still := &Boxer{}, &Still{}
	for i := 0; i < 200 && !g.Captured(); i++ {
		s := g.Snapshot()
		g.Apply(boxer.Act(s), *still.Move(s))
		if g.WallCount() > cfg.MaxWalls {
			t.Fatalf("tick %d: %d walls exceed budget", i, g.WallCount())
		}
	}
	if g.WallsBuilt() == 0 {
		t.Error("boxer never managed to build a wall")
	}
}

func TestStillAndDrift(t *testing.T) {
	s := snapshot(evasion.PosVel{Pos: evasion.P(1, 1), Vel: evasion.P(1, 1)}, evasion.P(5, 5))
	if m := (&Still{}).Move(s); m == nil || *m != (evasion.Point{}) {
		t.Errorf("Still.Move() = %v, expected zero step", m)
	}
	if m := (&Drift{}).Move(s); m != nil {
		t.Errorf("Drift.Move() = %v, expected nil", *m)
	}
}

func TestFlee(t *testing.T) {
	tests := []struct {
		name     string
		hunter   evasion.Point
		prey     evasion.Point
		walls    []evasion.Wall
		expected evasion.Point
	}{
		{"straight away", evasion.P(5, 5), evasion.P(8, 5), nil, evasion.P(1, 0)},
		{"diagonal away", evasion.P(2, 2), evasion.P(5, 6), nil, evasion.P(1, 1)},
		{"edge forces sideways", evasion.P(5, 5), evasion.P(9, 5), nil, evasion.P(0, 1)},
		{"wall forces sideways", evasion.P(2, 5), evasion.P(5, 5), []evasion.Wall{evasion.VerticalWall(6, 0, 9)}, evasion.P(0, 1)},
		{"diagonal slides along edge", evasion.P(2, 2), evasion.P(9, 5), nil, evasion.P(0, 1)},
		{"cornered", evasion.P(2, 2), evasion.P(9, 9), nil, evasion.P(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := snapshot(evasion.PosVel{Pos: tc.hunter, Vel: evasion.P(1, 1)}, tc.prey)
			s.Walls = tc.walls
			m := (&Flee{}).Move(s)
			if m == nil || *m != tc.expected {
				t.Errorf("Move() = %v, expected %v", m, tc.expected)
			}
		})
	}
}
