package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper"
	"github.com/vovakirdan/tui-sweeper/internal/platform/tui"
	"github.com/vovakirdan/tui-sweeper/internal/stats"
)

var (
	flagSize  int
	flagMines int
)

var playCmd = &cobra.Command{
	Use:   "play [easy|medium|hard|custom]",
	Short: "Play a board",
	Long: `Start playing a board. Without an argument the board from the config
file is used (easy by default).

Controls:
  Arrows/hjkl/wasd  - Move cursor
  Space/Enter       - Reveal
  F                 - Flag / question mark / clear
  C                 - Chord (reveal around a satisfied number)
  Mouse             - Left reveal, right flag, middle chord
  R                 - New board (an unfinished board counts as a loss)
  Esc               - Back to menu
  Q/Ctrl+C          - Quit

Presets:
  easy    -  9x9,  10 mines
  medium  - 16x16, 40 mines
  hard    - 22x22, 99 mines
  custom  - --size and --mines

Examples:
  sweeper play
  sweeper play medium
  sweeper play custom --size 30 --mines 150
  sweeper play easy --seed 42`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"easy", "medium", "hard", "custom"},
	RunE:      runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Board edge length for a custom board")
	playCmd.Flags().IntVar(&flagMines, "mines", 0, "Mine count for a custom board")
}

func runPlay(_ *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	difficulty, size, mines := e.cfg.Board.Difficulty, e.cfg.Board.Size, e.cfg.Board.Mines
	if len(args) == 1 {
		difficulty = args[0]
	}
	if flagSize > 0 {
		size, mines = flagSize, flagMines
		if len(args) == 0 {
			difficulty = string(stats.Custom)
		}
	}

	d, board, err := config.ResolveBoard(difficulty, size, mines)
	if err != nil {
		return err
	}

	e.logToFile()
	cfg := e.runtimeConfig()
	back, err := playBoard(e, d, board, cfg)
	if err != nil {
		return err
	}
	if back {
		cfg.Seed = 0
		return runMenuLoop(e, cfg)
	}
	return nil
}

// playBoard runs one game screen. Every finished board is recorded.
func playBoard(e *env, d stats.Difficulty, board stats.Preset, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	logger := e.logger.With("difficulty", d)

	game, err := minesweeper.New(minesweeper.Options{
		Size:  board.Size,
		Mines: board.Mines,
		Label: d.Label(),
		OnEnd: func(o minesweeper.Outcome) {
			rec, err := e.store.RecordOutcome(o)
			if err != nil {
				logger.Warn("stats not saved", "session", o.SessionID, "error", err)
				return
			}
			logger.Info("game recorded", "session", o.SessionID, "won", o.Won, "elapsed", o.ElapsedSeconds,
				"games", rec.GamesPlayed, "wins", rec.Wins)
		},
		Logger: logger,
	})
	if err != nil {
		return false, err
	}

	logger.Info("starting board", "size", board.Size, "mines", board.Mines)
	return tui.Run(game, cfg, logger)
}
