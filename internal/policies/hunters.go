package policies

import (
	"math/rand"

	"github.com/vovakirdan/evasion/internal/core"
	"github.com/vovakirdan/evasion/internal/evasion"
)

// Idle never builds; the hunter just bounces around the arena.
type Idle struct{}

func (*Idle) ID() string          { return "idle" }
func (*Idle) Description() string { return "never builds, pure bouncing" }
func (*Idle) Reset(int64)         {}

// Act always returns the empty action.
func (*Idle) Act(evasion.Snapshot) evasion.HunterAction {
	return evasion.HunterAction{}
}

// Random picks a build directive uniformly each tick. When the budget is
// spent and the cooldown is over it tears down a random wall first.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random hunter seeded with 0.
func NewRandom() *Random {
	return &Random{rng: rand.New(rand.NewSource(0))}
}

func (*Random) ID() string          { return "random" }
func (*Random) Description() string { return "random builds, random removals at budget" }

// Reset reseeds the policy.
func (r *Random) Reset(seed int64) {
	r.rng = rand.New(rand.NewSource(seed))
}

// Act draws the next action.
func (r *Random) Act(s evasion.Snapshot) evasion.HunterAction {
	a := evasion.HunterAction{Build: evasion.BuildDirective(r.rng.Intn(3))}
	if s.WallsRemaining == 0 && s.WallTimer <= 0 && len(s.Walls) > 0 {
		a.Remove = []int{r.rng.Intn(len(s.Walls))}
	}
	return a
}

// Boxer shrinks the prey's region. Whenever the cooldown allows, it closes
// the wall behind itself on the axis where it is closing in on the prey, so
// the hunter and the prey end up on the same side. With the budget spent it
// recycles its oldest wall.
type Boxer struct{}

func (*Boxer) ID() string          { return "boxer" }
func (*Boxer) Description() string { return "walls off the area behind itself while closing in" }
func (*Boxer) Reset(int64)         {}

// Act chooses a wall behind the hunter or nothing.
func (*Boxer) Act(s evasion.Snapshot) evasion.HunterAction {
	if s.WallTimer > 0 {
		return evasion.HunterAction{}
	}

	build := boxerDirective(s)
	if build == evasion.BuildNone {
		return evasion.HunterAction{}
	}

	a := evasion.HunterAction{Build: build}
	if s.WallsRemaining == 0 && len(s.Walls) > 0 {
		a.Remove = []int{0}
	}
	return a
}

func boxerDirective(s evasion.Snapshot) evasion.BuildDirective {
	h := s.Hunter
	dx := s.Prey.X - h.Pos.X
	dy := s.Prey.Y - h.Pos.Y

	// A wall through the prey's row or column would fail anyway.
	closingX := dx != 0 && core.Sign(dx) == core.Sign(h.Vel.X)
	closingY := dy != 0 && core.Sign(dy) == core.Sign(h.Vel.Y)

	switch {
	case closingX && closingY:
		if core.Abs(dx) >= core.Abs(dy) {
			return evasion.BuildVertical
		}
		return evasion.BuildHorizontal
	case closingX:
		return evasion.BuildVertical
	case closingY:
		return evasion.BuildHorizontal
	}
	return evasion.BuildNone
}
