package config

import (
	_ "embed"
)

//go:embed defaults/evasion.yaml
var defaultEvasionYAML []byte

// DefaultEvasionConfig returns the default arena configuration.
func DefaultEvasionConfig() EvasionConfig {
	return EvasionConfig{
		Board: BoardConfig{
			Width:  300,
			Height: 300,
		},
		Walls: WallsConfig{
			Max:            10,
			PlacementDelay: 20,
		},
		Hunter: HunterSpawn{
			X:  0,
			Y:  0,
			VX: 1,
			VY: 1,
		},
		Prey: PreySpawn{
			X: 230,
			Y: 200,
		},
		Episode: EpisodeConfig{
			MaxTicks:       5000,
			PreyTurnChance: 0.1,
		},
	}
}
