package core

// RuntimeConfig contains per-run settings the platform passes to a simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second for interactive runs
	Seed     int64 // RNG seed; 0 means derive from the clock in the platform layer
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 20,
	}
}

// GameState is the platform-facing status of a running episode.
type GameState struct {
	Tick      int
	Captured  bool // Hunter has line of sight on the prey within range
	Truncated bool // Tick limit reached without capture
	Paused    bool
}

// Over reports whether the episode has ended for either reason.
func (s GameState) Over() bool {
	return s.Captured || s.Truncated
}
