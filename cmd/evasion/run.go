package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/evasion/internal/episode"
	"github.com/vovakirdan/evasion/internal/export"
	"github.com/vovakirdan/evasion/internal/registry"
	"github.com/vovakirdan/evasion/internal/storage"
)

var (
	runArena     arenaFlags
	flagEpisodes int
	flagWorkers  int
	flagHunter   string
	flagPrey     string
	flagExport   string
	flagNoStore  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play a batch of episodes",
	Long: `Play episodes between a hunter policy and a prey policy in parallel.

Each worker owns its own arena. Outcomes are stored in the episode
database; with --export every tick is also written to a Parquet file
for offline training. Episode i is played with seed --seed + i, so a
batch can be replayed exactly.

Examples:
  evasion run --hunter boxer --prey flee --episodes 1000
  evasion run --difficulty hard --workers 4
  evasion run --size 120x80 --max-walls 6 --wall-delay 15
  evasion run --export ./trajectories --no-store --seed 42`,
	Args: cobra.NoArgs,
	Run:  runRun,
}

func init() {
	runArena.register(runCmd)
	runCmd.Flags().IntVar(&flagEpisodes, "episodes", 100, "Number of episodes to play")
	runCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel workers (0 = one per CPU)")
	runCmd.Flags().StringVar(&flagHunter, "hunter", "boxer", "Hunter policy ID")
	runCmd.Flags().StringVar(&flagPrey, "prey", "drift", "Prey policy ID")
	runCmd.Flags().StringVar(&flagExport, "export", "", "Directory to write Parquet trajectories to")
	runCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "Do not save outcomes to the database")
}

func runRun(cmd *cobra.Command, _ []string) {
	if err := runBatch(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runBatch(cmd *cobra.Command) error {
	cfg, err := loadArena(cmd, runArena)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return err
	}

	if !registry.HunterExists(flagHunter) {
		return fmt.Errorf("unknown hunter %q (run 'evasion policies' to see available policies)", flagHunter)
	}
	if !registry.PreyExists(flagPrey) {
		return fmt.Errorf("unknown prey %q (run 'evasion policies' to see available policies)", flagPrey)
	}

	var sink episode.ResultSaver
	if !flagNoStore {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		sink = store
	}

	var writer *export.TrajectoryWriter
	var rec episode.Recorder
	if flagExport != "" {
		writer, err = export.NewTrajectoryWriter(flagExport)
		if err != nil {
			return err
		}
		rec = writer
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bc := episode.BatchConfig{
		Config:   cfg,
		Hunter:   flagHunter,
		Prey:     flagPrey,
		Episodes: flagEpisodes,
		Workers:  flagWorkers,
		Seed:     baseSeed(),
		Recorder: rec,
		Logger:   logger,
	}
	logger.Info("starting batch",
		"hunter", bc.Hunter, "prey", bc.Prey,
		"episodes", bc.Episodes, "seed", bc.Seed,
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"walls", cfg.Walls.Max, "delay", cfg.Walls.PlacementDelay)

	summary, runErr := episode.RunBatch(ctx, bc, sink)

	if writer != nil {
		path, rows, episodes, err := writer.Finalize()
		switch {
		case err != nil:
			logger.Error("could not finalize trajectories", "error", err)
		case path != "":
			logger.Info("trajectories written", "path", path, "rows", rows, "episodes", episodes)
		}
	}

	logger.Info("batch finished",
		"episodes", len(summary.Results),
		"captures", summary.Captures,
		"truncated", summary.Truncated,
		"capture_rate", fmt.Sprintf("%.1f%%", summary.CaptureRate()*100),
		"mean_ticks", fmt.Sprintf("%.1f", summary.MeanTicks))

	return runErr
}
