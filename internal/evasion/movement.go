package evasion

// Move returns pv advanced one step, bouncing off blocked cells.
//
// Velocity is first clamped to {-1, 0, 1} per axis. An open target is simply
// entered. Axial motion into a block reverses that axis in place. Diagonal
// motion into a block probes the two single-axis neighbours: a blocked side
// reverses that axis while the agent slides along the other one; both blocked
// reverses both in place. When both neighbours are open (a lone corner) the
// second-order cells (vx, 2vy) and (2vx, vy) decide: exactly one blocked acts
// like the matching side, otherwise both axes reverse in place.
func (g *Game) Move(pv PosVel) PosVel {
	pos := pv.Pos
	vel := pv.Vel.Unit()
	target := pos.Add(vel)

	if !g.IsOccupied(target) {
		return PosVel{Pos: target, Vel: vel}
	}

	if vel.X == 0 || vel.Y == 0 {
		if vel.X != 0 {
			vel.X = -vel.X
		} else {
			vel.Y = -vel.Y
		}
		return PosVel{Pos: pos, Vel: vel}
	}

	sideX := g.IsOccupied(pos.Add(P(vel.X, 0)))
	sideY := g.IsOccupied(pos.Add(P(0, vel.Y)))

	switch {
	case sideX && sideY:
		return PosVel{Pos: pos, Vel: vel.Neg()}
	case sideX:
		return PosVel{Pos: P(pos.X, target.Y), Vel: P(-vel.X, vel.Y)}
	case sideY:
		return PosVel{Pos: P(target.X, pos.Y), Vel: P(vel.X, -vel.Y)}
	}

	farY := g.IsOccupied(pos.Add(P(vel.X, 2*vel.Y)))
	farX := g.IsOccupied(pos.Add(P(2*vel.X, vel.Y)))

	switch {
	case farY == farX:
		return PosVel{Pos: pos, Vel: vel.Neg()}
	case farY:
		return PosVel{Pos: P(pos.X, target.Y), Vel: P(-vel.X, vel.Y)}
	default:
		return PosVel{Pos: P(target.X, pos.Y), Vel: P(vel.X, -vel.Y)}
	}
}
