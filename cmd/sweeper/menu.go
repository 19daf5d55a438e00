package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/platform/tui"
	"github.com/vovakirdan/tui-sweeper/internal/stats"
)

// defaultCustom is offered in the menu when the config has no custom board.
var defaultCustom = stats.Preset{Size: 12, Mines: 25}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a board from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a board, Tab for
statistics. After a board, Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Statistics
  Q            - Quit

Examples:
  sweeper menu
  sweeper menu --fps 30
  sweeper menu --stats-backend yaml --db ./stats.yaml`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	e.logToFile()
	return runMenuLoop(e, e.runtimeConfig())
}

// runMenuLoop shows the menu until the player quits. A fixed seed in cfg
// only applies to the first board.
func runMenuLoop(e *env, cfg core.RuntimeConfig) error {
	custom := defaultCustom
	if _, p, err := config.ResolveBoard(string(stats.Custom), e.cfg.Board.Size, e.cfg.Board.Mines); err == nil {
		custom = p
	}
	items := tui.MenuItems(custom)

	for {
		res, err := tui.RunMenu(items, e.store.Load(), cfg)
		if err != nil {
			return fmt.Errorf("running menu: %w", err)
		}
		cfg = res.Config
		if res.Quit {
			return nil
		}

		if res.Item.Stats {
			goBack, err := tui.RunScoreboard(e.store.Load(), e.journal(), cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return fmt.Errorf("running statistics board: %w", err)
			}
			if !goBack {
				return nil
			}
			continue
		}

		d := stats.Classify(res.Item.Board.Size, res.Item.Board.Mines)
		back, err := playBoard(e, d, res.Item.Board, cfg)
		cfg.Seed = 0
		if err != nil {
			e.logger.Error("board failed", "difficulty", d, "error", err)
			continue
		}
		if !back {
			return nil
		}
	}
}
