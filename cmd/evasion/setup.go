package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/evasion/internal/config"
)

// arenaFlags are the config overrides shared by run and watch.
type arenaFlags struct {
	size      string
	maxWalls  int
	wallDelay int
	maxTicks  int
}

func (f *arenaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.size, "size", "", "Board size as WIDTHxHEIGHT (e.g. 120x80)")
	cmd.Flags().IntVar(&f.maxWalls, "max-walls", 0, "Maximum walls standing at once")
	cmd.Flags().IntVar(&f.wallDelay, "wall-delay", 0, "Ticks between wall placements")
	cmd.Flags().IntVar(&f.maxTicks, "max-ticks", 0, "Episode tick limit (0 = unlimited)")
}

// loadArena loads the config file, applies the difficulty preset and then
// any flag the user set explicitly.
func loadArena(cmd *cobra.Command, f arenaFlags) (config.EvasionConfig, error) {
	cfg, err := config.LoadEvasion(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	if !config.IsFixedPreset(preset) {
		config.ApplyEvasionPreset(&cfg, preset)
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		w, h, err := parseSize(f.size)
		if err != nil {
			return cfg, err
		}
		cfg.Resize(w, h)
	}
	if flags.Changed("max-walls") {
		cfg.Walls.Max = f.maxWalls
	}
	if flags.Changed("wall-delay") {
		cfg.Walls.PlacementDelay = f.wallDelay
	}
	if flags.Changed("max-ticks") {
		cfg.Episode.MaxTicks = f.maxTicks
	}

	return cfg, cfg.Validate()
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: expected WIDTHxHEIGHT", s)
	}
	w, errW := strconv.Atoi(strings.TrimSpace(ws))
	h, errH := strconv.Atoi(strings.TrimSpace(hs))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: expected positive WIDTHxHEIGHT", s)
	}
	return w, h, nil
}

// newLogger builds the process logger. A config with debug set forces
// debug level so wall placements are reported.
func newLogger(debug bool) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", flagLogLevel)
	}
	if debug {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "evasion",
		Level:           level,
	})
	return logger, nil
}

// baseSeed returns --seed, or a clock-derived seed when it is unset.
func baseSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
