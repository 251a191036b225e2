package evasion

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every construction-time rejection.
var ErrInvalidConfig = errors.New("evasion: invalid config")

// Config holds the construction parameters of one game.
type Config struct {
	BoardW             int
	BoardH             int
	MaxWalls           int // Maximum simultaneous walls
	WallPlacementDelay int // Ticks between successful builds
	Hunter             PosVel
	Prey               Point
}

// DefaultConfig returns the standard 300x300 arena.
func DefaultConfig() Config {
	return Config{
		BoardW:             300,
		BoardH:             300,
		MaxWalls:           10,
		WallPlacementDelay: 20,
		Hunter:             PosVel{Pos: P(0, 0), Vel: P(1, 1)},
		Prey:               P(230, 200),
	}
}

// Validate checks the construction preconditions.
func (c Config) Validate() error {
	if c.BoardW <= 0 || c.BoardH <= 0 {
		return fmt.Errorf("%w: board must be positive, got %dx%d", ErrInvalidConfig, c.BoardW, c.BoardH)
	}
	if c.MaxWalls <= 0 {
		return fmt.Errorf("%w: wall budget must be positive, got %d", ErrInvalidConfig, c.MaxWalls)
	}
	if c.WallPlacementDelay < 0 {
		return fmt.Errorf("%w: wall placement delay must not be negative, got %d", ErrInvalidConfig, c.WallPlacementDelay)
	}
	if !c.inBounds(c.Hunter.Pos) {
		return fmt.Errorf("%w: hunter spawn %v outside %dx%d board", ErrInvalidConfig, c.Hunter.Pos, c.BoardW, c.BoardH)
	}
	if !c.inBounds(c.Prey) {
		return fmt.Errorf("%w: prey spawn %v outside %dx%d board", ErrInvalidConfig, c.Prey, c.BoardW, c.BoardH)
	}
	return nil
}

func (c Config) inBounds(p Point) bool {
	return p.X >= 0 && p.X < c.BoardW && p.Y >= 0 && p.Y < c.BoardH
}
