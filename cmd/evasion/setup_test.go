package main

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"120x80", 120, 80, false},
		{"64X32", 64, 32, false},
		{" 10 x 5 ", 10, 5, false},
		{"120", 0, 0, true},
		{"0x10", 0, 0, true},
		{"10x-1", 0, 0, true},
		{"axb", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := parseSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("parseSize(%q) = %dx%d, expected %dx%d", tt.in, w, h, tt.w, tt.h)
			}
		})
	}
}

func newArenaCmd(t *testing.T, difficulty string, set map[string]string) (*cobra.Command, *arenaFlags) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	oldConfig, oldDifficulty := flagConfig, flagDifficulty
	t.Cleanup(func() { flagConfig, flagDifficulty = oldConfig, oldDifficulty })
	flagConfig, flagDifficulty = "", difficulty

	cmd := &cobra.Command{Use: "test"}
	f := &arenaFlags{}
	f.register(cmd)
	for name, value := range set {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("Set(%s) error = %v", name, err)
		}
	}
	return cmd, f
}

func TestLoadArenaOverrides(t *testing.T) {
	cmd, f := newArenaCmd(t, "", map[string]string{
		"size":      "60x40",
		"max-walls": "3",
		"max-ticks": "0",
	})

	cfg, err := loadArena(cmd, *f)
	if err != nil {
		t.Fatalf("loadArena() error = %v", err)
	}
	if cfg.Board.Width != 60 || cfg.Board.Height != 40 {
		t.Errorf("board = %dx%d, expected 60x40", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Prey.X != 46 || cfg.Prey.Y != 26 {
		t.Errorf("prey spawn = (%d,%d), expected it scaled to (46,26)", cfg.Prey.X, cfg.Prey.Y)
	}
	if cfg.Walls.Max != 3 || cfg.Walls.PlacementDelay != 20 {
		t.Errorf("walls = %+v, expected max 3 with the default delay", cfg.Walls)
	}
	if cfg.Episode.MaxTicks != 0 {
		t.Errorf("MaxTicks = %d, expected the explicit 0", cfg.Episode.MaxTicks)
	}
}

func TestLoadArenaPresetThenFlags(t *testing.T) {
	cmd, f := newArenaCmd(t, "hard", map[string]string{"wall-delay": "7"})

	cfg, err := loadArena(cmd, *f)
	if err != nil {
		t.Fatalf("loadArena() error = %v", err)
	}
	if cfg.Walls.Max != 5 || cfg.Walls.PlacementDelay != 7 {
		t.Errorf("walls = %+v, expected the hard budget with the flag's delay", cfg.Walls)
	}
}

func TestLoadArenaRejects(t *testing.T) {
	cmd, f := newArenaCmd(t, "brutal", nil)
	if _, err := loadArena(cmd, *f); err == nil {
		t.Error("unknown difficulty accepted")
	}

	cmd, f = newArenaCmd(t, "", map[string]string{"max-walls": "0"})
	if _, err := loadArena(cmd, *f); err == nil {
		t.Error("zero wall budget accepted")
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q): %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
