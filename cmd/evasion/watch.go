package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/evasion/internal/core"
	"github.com/vovakirdan/evasion/internal/episode"
	"github.com/vovakirdan/evasion/internal/platform/tui"
	"github.com/vovakirdan/evasion/internal/registry"
	"github.com/vovakirdan/evasion/internal/storage"
)

// viewerChromeRows is the number of terminal rows the viewer uses around the
// board: HUD, status line and help bar.
const viewerChromeRows = 3

var (
	watchArena  arenaFlags
	flagFPS     int
	flagManual  bool
	watchHunter string
	watchPrey   string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch or play one episode",
	Long: `Step one episode per frame in the terminal.

Unless --size is given, the board is shrunk to fit the terminal.

Controls:
  H / V      - Hunter builds a horizontal / vertical wall (manual)
  X          - Hunter removes its oldest wall (manual)
  Arrows     - Steer the prey
  A / Tab    - Switch the hunter between policy and keyboard
  P / Esc    - Pause
  R          - Restart with a new seed
  ?          - Full help
  Q / Ctrl+C - Quit

Examples:
  evasion watch
  evasion watch --hunter random --prey flee --fps 30
  evasion watch --manual --size 100x40`,
	Args: cobra.NoArgs,
	Run:  runWatch,
}

func init() {
	watchArena.register(watchCmd)
	watchCmd.Flags().IntVar(&flagFPS, "fps", 20, "Ticks per second")
	watchCmd.Flags().BoolVar(&flagManual, "manual", false, "Start with the hunter under keyboard control")
	watchCmd.Flags().StringVar(&watchHunter, "hunter", "boxer", "Hunter policy ID")
	watchCmd.Flags().StringVar(&watchPrey, "prey", "drift", "Prey policy ID")
}

func runWatch(cmd *cobra.Command, _ []string) {
	cfg, err := loadArena(cmd, watchArena)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	if !cmd.Flags().Changed("size") {
		cfg.Resize(min(cfg.Board.Width, width), min(cfg.Board.Height, height-viewerChromeRows))
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: terminal too small: %v\n", err)
			os.Exit(1)
		}
	}

	hunter, err := registry.CreateHunter(watchHunter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'evasion policies' to see available policies.")
		os.Exit(1)
	}
	prey, err := registry.CreatePrey(watchPrey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'evasion policies' to see available policies.")
		os.Exit(1)
	}

	env, err := episode.NewEnv(cfg, episode.WithBoardObservations(false))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open episode database, outcomes will not be saved", "error", err)
		store = nil
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	runErr := tui.Run(env, hunter, prey, rc, tui.Options{Store: store, Manual: flagManual})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", runErr)
		os.Exit(1)
	}
}
