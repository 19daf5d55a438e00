package config

import (
	"fmt"

	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper"
	"github.com/vovakirdan/tui-sweeper/internal/stats"
)

// ResolveBoard turns a difficulty name plus optional custom dimensions
// into a board shape and its statistics bucket. An empty name with a size
// means custom. Custom shapes that match a preset are bucketed as that preset.
func ResolveBoard(difficulty string, size, mines int) (stats.Difficulty, stats.Preset, error) {
	if difficulty == "" {
		difficulty = string(stats.Easy)
		if size > 0 {
			difficulty = string(stats.Custom)
		}
	}

	d, err := stats.Parse(difficulty)
	if err != nil {
		return "", stats.Preset{}, fmt.Errorf("%w: %w", minesweeper.ErrInvalidConfig, err)
	}

	if p, ok := stats.Dimensions(d); ok {
		return d, p, nil
	}

	if size <= 0 {
		return "", stats.Preset{}, fmt.Errorf("%w: custom board needs a size", minesweeper.ErrInvalidConfig)
	}
	if err := minesweeper.Validate(size, mines); err != nil {
		return "", stats.Preset{}, err
	}
	p := stats.Preset{Size: size, Mines: mines}
	return stats.Classify(size, mines), p, nil
}

// BoardFor resolves the configured default board.
func (c Config) BoardFor() (stats.Difficulty, stats.Preset, error) {
	return ResolveBoard(c.Board.Difficulty, c.Board.Size, c.Board.Mines)
}
