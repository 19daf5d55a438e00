package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/stats"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var (
	flagTop    int
	flagRecent int
	flagClear  bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [easy|medium|hard|custom]",
	Short: "Show statistics and best times",
	Long: `Display games played, wins and best time for every difficulty.
With the sqlite backend the fastest wins and the latest games are listed too.

Examples:
  sweeper stats
  sweeper stats hard --top 5
  sweeper stats --recent 10
  sweeper stats --clear`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"easy", "medium", "hard", "custom"},
	RunE:      runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagTop, "top", 5, "Number of best times to show per difficulty")
	statsCmd.Flags().IntVar(&flagRecent, "recent", 0, "Number of recent games to show")
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Reset all statistics")
}

func runStats(cmd *cobra.Command, args []string) error {
	difficulties := stats.All()
	if len(args) == 1 {
		d, err := stats.Parse(args[0])
		if err != nil {
			return fmt.Errorf("%w (run 'sweeper presets' to see the difficulties)", err)
		}
		difficulties = []stats.Difficulty{d}
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if e.db != nil {
			err = e.db.ClearStats()
		} else {
			err = e.store.Backend().WriteAll(stats.DefaultTable())
		}
		if err != nil {
			return fmt.Errorf("clearing statistics: %w", err)
		}
		fmt.Fprintln(out, "Statistics cleared.")
		return nil
	}

	table := e.store.Load()

	fmt.Fprintln(out, "Statistics")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-8s  %8s  %8s  %6s  %s\n", "Level", "Games", "Wins", "Win %", "Best")
	fmt.Fprintf(out, "  %-8s  %8s  %8s  %6s  %s\n", "-----", "-----", "----", "-----", "----")
	played := 0
	for _, d := range difficulties {
		rec := table[d]
		played += rec.GamesPlayed
		fmt.Fprintf(out, "  %-8s  %8s  %8s  %5.0f%%  %s\n", d.Label(),
			humanize.Comma(int64(rec.GamesPlayed)), humanize.Comma(int64(rec.Wins)),
			rec.WinRate(), rec.BestTime())
	}

	if played == 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "No games recorded yet. Run 'sweeper play' to start.")
		return nil
	}

	if e.db == nil {
		return nil
	}

	for _, d := range difficulties {
		best, err := e.db.BestTimes(d, flagTop)
		if err != nil {
			return fmt.Errorf("reading best times: %w", err)
		}
		if len(best) == 0 {
			continue
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best times - %s\n", d.Label())
		printGames(out, best)
	}

	if flagRecent > 0 {
		recent, err := e.db.RecentGames(flagRecent)
		if err != nil {
			return fmt.Errorf("reading recent games: %w", err)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Recent games")
		printGames(out, recent)
	}
	return nil
}

func printGames(out io.Writer, games []storage.GameEntry) {
	fmt.Fprintf(out, "  %-4s  %-8s  %-7s  %-6s  %6s  %s\n", "#", "Level", "Board", "Result", "Time", "Played")
	for i, g := range games {
		result := "lost"
		if g.Won {
			result = "won"
		}
		board := fmt.Sprintf("%dx%d/%d", g.Size, g.Size, g.Mines)
		fmt.Fprintf(out, "  %-4d  %-8s  %-7s  %-6s  %5ds  %s\n", i+1, g.Difficulty.Label(), board, result,
			g.ElapsedSeconds, humanize.Time(g.PlayedAt))
	}
}
