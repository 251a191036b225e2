// Package config provides YAML-based configuration loading and difficulty
// presets for the pursuit arena.
package config

import (
	"fmt"

	"github.com/vovakirdan/evasion/internal/evasion"
)

// EvasionConfig contains all configuration for an evasion episode.
type EvasionConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Walls   WallsConfig   `yaml:"walls"`
	Hunter  HunterSpawn   `yaml:"hunter"`
	Prey    PreySpawn     `yaml:"prey"`
	Episode EpisodeConfig `yaml:"episode"`
	Debug   bool          `yaml:"debug"`
}

// BoardConfig defines the arena dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// WallsConfig defines the hunter's wall resources.
type WallsConfig struct {
	Max            int `yaml:"max"`
	PlacementDelay int `yaml:"placement_delay"`
}

// HunterSpawn defines where the hunter starts and how it initially moves.
type HunterSpawn struct {
	X  int `yaml:"x"`
	Y  int `yaml:"y"`
	VX int `yaml:"vx"`
	VY int `yaml:"vy"`
}

// PreySpawn defines where the prey starts.
type PreySpawn struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// EpisodeConfig defines episode limits and the prey's default random walk.
type EpisodeConfig struct {
	MaxTicks       int     `yaml:"max_ticks"`        // 0 = unlimited
	PreyTurnChance float64 `yaml:"prey_turn_chance"` // Chance per tick of picking a new direction
}

// Validate checks that the configuration describes a playable arena.
func (c EvasionConfig) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("config: board must be positive, got %dx%d", c.Board.Width, c.Board.Height)
	}
	if c.Walls.Max <= 0 {
		return fmt.Errorf("config: walls.max must be positive, got %d", c.Walls.Max)
	}
	if c.Walls.PlacementDelay < 0 {
		return fmt.Errorf("config: walls.placement_delay must not be negative, got %d", c.Walls.PlacementDelay)
	}
	if !c.onBoard(c.Hunter.X, c.Hunter.Y) {
		return fmt.Errorf("config: hunter spawn (%d,%d) outside board", c.Hunter.X, c.Hunter.Y)
	}
	if !c.onBoard(c.Prey.X, c.Prey.Y) {
		return fmt.Errorf("config: prey spawn (%d,%d) outside board", c.Prey.X, c.Prey.Y)
	}
	if c.Hunter.X == c.Prey.X && c.Hunter.Y == c.Prey.Y {
		return fmt.Errorf("config: hunter and prey share spawn (%d,%d)", c.Prey.X, c.Prey.Y)
	}
	if c.Episode.MaxTicks < 0 {
		return fmt.Errorf("config: episode.max_ticks must not be negative, got %d", c.Episode.MaxTicks)
	}
	if c.Episode.PreyTurnChance < 0 || c.Episode.PreyTurnChance > 1 {
		return fmt.Errorf("config: episode.prey_turn_chance must be in [0,1], got %v", c.Episode.PreyTurnChance)
	}
	return nil
}

func (c EvasionConfig) onBoard(x, y int) bool {
	return x >= 0 && x < c.Board.Width && y >= 0 && y < c.Board.Height
}

// Engine converts the file configuration into engine construction parameters.
func (c EvasionConfig) Engine() evasion.Config {
	return evasion.Config{
		BoardW:             c.Board.Width,
		BoardH:             c.Board.Height,
		MaxWalls:           c.Walls.Max,
		WallPlacementDelay: c.Walls.PlacementDelay,
		Hunter: evasion.PosVel{
			Pos: evasion.P(c.Hunter.X, c.Hunter.Y),
			Vel: evasion.P(c.Hunter.VX, c.Hunter.VY),
		},
		Prey: evasion.P(c.Prey.X, c.Prey.Y),
	}
}

// Resize changes the board dimensions and pulls both spawns back onto it.
// The prey keeps its position relative to the board size so a shrunken
// arena still starts the agents apart.
func (c *EvasionConfig) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	oldW, oldH := c.Board.Width, c.Board.Height
	c.Board.Width, c.Board.Height = width, height

	c.Hunter.X = min(c.Hunter.X, width-1)
	c.Hunter.Y = min(c.Hunter.Y, height-1)
	if oldW > 0 && oldH > 0 {
		c.Prey.X = c.Prey.X * width / oldW
		c.Prey.Y = c.Prey.Y * height / oldH
	}
	c.Prey.X = min(max(c.Prey.X, 0), width-1)
	c.Prey.Y = min(max(c.Prey.Y, 0), height-1)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name. An empty name means normal.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// IsFixedPreset returns true if the preset keeps the loaded values untouched.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
