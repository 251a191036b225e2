package policies

import (
	"github.com/vovakirdan/evasion/internal/core"
	"github.com/vovakirdan/evasion/internal/evasion"
)

// Drift leaves the prey to the environment's random walk.
type Drift struct{}

func (*Drift) ID() string          { return "drift" }
func (*Drift) Description() string { return "random walk, occasional turns" }
func (*Drift) Reset(int64)         {}

// Move defers to the environment.
func (*Drift) Move(evasion.Snapshot) *evasion.Point { return nil }

// Still never moves.
type Still struct{}

func (*Still) ID() string          { return "still" }
func (*Still) Description() string { return "stands still" }
func (*Still) Reset(int64)         {}

// Move always returns the zero step.
func (*Still) Move(evasion.Snapshot) *evasion.Point {
	return &evasion.Point{}
}

// Flee steps directly away from the hunter. When that cell is blocked it
// tries the single-axis components and then the two sideways steps.
type Flee struct{}

func (*Flee) ID() string          { return "flee" }
func (*Flee) Description() string { return "runs from the hunter, sidesteps walls" }
func (*Flee) Reset(int64)         {}

// Move picks the first open candidate step.
func (*Flee) Move(s evasion.Snapshot) *evasion.Point {
	away := evasion.P(
		core.Sign(s.Prey.X-s.Hunter.Pos.X),
		core.Sign(s.Prey.Y-s.Hunter.Pos.Y),
	)
	if away == (evasion.Point{}) {
		away = s.Hunter.Vel.Unit()
	}

	candidates := []evasion.Point{
		away,
		evasion.P(away.X, 0),
		evasion.P(0, away.Y),
		evasion.P(-away.Y, away.X),
		evasion.P(away.Y, -away.X),
	}
	for _, step := range candidates {
		if step == (evasion.Point{}) {
			continue
		}
		if !s.Occupied(s.Prey.Add(step)) {
			return &step
		}
	}
	return &evasion.Point{}
}
