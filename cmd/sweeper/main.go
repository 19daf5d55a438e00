// sweeper is a terminal Minesweeper with persistent per-difficulty statistics.
//
// Usage:
//
//	sweeper play [easy|medium|hard|custom]  - Play a board
//	sweeper menu                            - Pick a board interactively
//	sweeper stats                           - Show statistics and best times
//	sweeper presets                         - List the board presets
//
// Global flags:
//
//	--fps <rate>            - Set tick rate (default from config: 10)
//	--seed <value>          - Set RNG seed for a reproducible first board
//	--db <path>             - Set statistics location (default: ~/.sweeper/sweeper.db)
//	--stats-backend <name>  - sqlite, yaml or memory
//	--config <path>         - Use a specific config file (.yaml or .toml)
//	--log-level <level>     - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS          int
	flagSeed         int64
	flagDBPath       string
	flagStatsBackend string
	flagConfig       string
	flagLogLevel     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sweeper",
	Short: "Minesweeper in your terminal",
	Long: `sweeper is a terminal Minesweeper. Clear every safe cell without
opening a mine; statistics are kept per difficulty.

Available commands:
  play     - Play a board directly
  menu     - Interactive board picker
  stats    - View statistics and best times
  presets  - List board presets

Examples:
  sweeper play
  sweeper play hard
  sweeper play custom --size 30 --mines 150
  sweeper menu --stats-backend yaml
  sweeper stats --top 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for the first board (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to statistics database or file (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagStatsBackend, "stats-backend", "", "Statistics backend: sqlite, yaml or memory")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(presetsCmd)
}
