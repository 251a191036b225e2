// evasion runs hunter/prey pursuit episodes on a walled grid.
//
// Usage:
//
//	evasion run                 - Play a batch of episodes between two policies
//	evasion watch               - Watch or play one episode in the terminal
//	evasion results             - Show stored outcomes and matchup statistics
//	evasion policies            - List registered hunter and prey policies
//
// Global flags:
//
//	--config <path>      - Custom arena config YAML
//	--difficulty <name>  - Hunter resources: easy, normal, hard, fixed
//	--db <path>          - Outcome database (default: ~/.evasion/episodes.db)
//	--seed <value>       - Base RNG seed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import policies to register them
	_ "github.com/vovakirdan/evasion/internal/policies"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagDBPath     string
	flagSeed       int64
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "evasion",
	Short: "Evasion - a hunter chases a prey across a grid it walls off",
	Long: `Evasion is a pursuit game on a rectangular grid. A hunter bounces
around the board building walls to trap a prey; it wins once the prey is
within range with a clear line of sight.

Available commands:
  run       - Play a batch of episodes and store the outcomes
  watch     - Watch one episode, or drive it from the keyboard
  results   - Show stored outcomes and capture rates
  policies  - List hunter and prey policies

Examples:
  evasion run --hunter boxer --prey flee --episodes 500
  evasion run --export ./trajectories --no-store
  evasion watch --hunter random --fps 30
  evasion results --browse`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.evasion/episodes.db", "Path to episode database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(policiesCmd)
}
