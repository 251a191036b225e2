package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/evasion/internal/platform/tui"
	"github.com/vovakirdan/evasion/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
	flagClear  bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [hunter prey]",
	Short: "Show stored episode outcomes",
	Long: `Display capture statistics for every matchup played so far, followed
by the most recent episodes. With a hunter and prey, only that matchup is
shown.

Examples:
  evasion results
  evasion results boxer flee --limit 50
  evasion results --browse
  evasion results --clear`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected no arguments or a hunter and a prey, got %d", len(args))
		}
		return nil
	},
	Run: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of recent episodes to list")
	resultsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive results browser")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every stored episode")
}

func runResults(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening episode database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		err = store.ClearEpisodes()
		if err == nil {
			fmt.Println("All stored episodes deleted.")
		}
	case flagBrowse:
		err = browseResults(store)
	case len(args) == 2:
		err = printMatchup(store, args[0], args[1])
	default:
		err = printOverview(store)
	}

	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func browseResults(store *storage.Store) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("--browse needs an interactive terminal")
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		width, height = 80, 24
	}
	return tui.RunResults(store, width, height)
}

func printOverview(store *storage.Store) error {
	stats, err := store.AllMatchupStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No episodes recorded yet.")
		fmt.Println()
		fmt.Println("Run 'evasion run' to play some.")
		return nil
	}

	fmt.Println("Matchups")
	fmt.Println()
	fmt.Printf("  %-12s  %-12s  %8s  %8s  %9s  %10s  %9s\n",
		"Hunter", "Prey", "Episodes", "Captured", "Rate", "Avg ticks", "Avg walls")
	fmt.Printf("  %-12s  %-12s  %8s  %8s  %9s  %10s  %9s\n",
		"------", "----", "--------", "--------", "----", "---------", "---------")
	for _, s := range stats {
		fmt.Printf("  %-12s  %-12s  %8d  %8d  %8.1f%%  %10.1f  %9.1f\n",
			s.Hunter, s.Prey, s.Episodes, s.Captures, s.CaptureRate()*100, s.AvgTicks, s.AvgWallsBuilt)
	}

	recs, err := store.RecentEpisodes(flagLimit)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Recent episodes")
	fmt.Println()
	printEpisodes(recs)
	return nil
}

func printMatchup(store *storage.Store, hunter, prey string) error {
	s, err := store.MatchupStats(hunter, prey)
	if err != nil {
		return err
	}
	fmt.Printf("%s vs %s\n", hunter, prey)
	fmt.Println()
	if s.Episodes == 0 {
		fmt.Println("No episodes recorded for this matchup.")
		return nil
	}

	fmt.Printf("  Episodes:          %d\n", s.Episodes)
	fmt.Printf("  Captures:          %d (%.1f%%)\n", s.Captures, s.CaptureRate()*100)
	fmt.Printf("  Avg ticks:         %.1f\n", s.AvgTicks)
	fmt.Printf("  Avg capture ticks: %.1f\n", s.AvgCaptureTicks)
	fmt.Printf("  Avg walls built:   %.1f\n", s.AvgWallsBuilt)
	fmt.Printf("  Last played:       %s\n", s.LastPlayed.Format("2006-01-02 15:04"))

	recs, err := store.EpisodesFor(hunter, prey, flagLimit)
	if err != nil {
		return err
	}
	fmt.Println()
	printEpisodes(recs)
	return nil
}

func printEpisodes(recs []storage.EpisodeRecord) {
	fmt.Printf("  %-6s  %-12s  %-12s  %-8s  %6s  %7s  %20s  %s\n",
		"ID", "Hunter", "Prey", "Outcome", "Ticks", "Walls", "Seed", "Date")
	fmt.Printf("  %-6s  %-12s  %-12s  %-8s  %6s  %7s  %20s  %s\n",
		"--", "------", "----", "-------", "-----", "-----", "----", "----")
	for _, r := range recs {
		outcome := "stopped"
		switch {
		case r.Captured:
			outcome = "captured"
		case r.Truncated:
			outcome = "escaped"
		}
		fmt.Printf("  %-6d  %-12s  %-12s  %-8s  %6d  %3d/%-3d  %20d  %s\n",
			r.ID, r.Hunter, r.Prey, outcome, r.Ticks, r.WallsBuilt, r.WallsRemoved, r.Seed,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
