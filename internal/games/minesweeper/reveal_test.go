package minesweeper

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, size int, mines ...Point) *Board {
	t.Helper()
	b, err := NewBoardWithMines(size, mines)
	require.NoError(t, err)
	return b
}

func revealedSet(b *Board) map[Point]bool {
	out := make(map[Point]bool)
	for i, c := range b.cells {
		if c.Revealed {
			out[b.point(i)] = true
		}
	}
	return out
}

func TestRevealSingleMineCornerWins(t *testing.T) {
	b := mustBoard(t, 5, Point{0, 0})

	res, err := Reveal(b, 2, 2)
	require.NoError(t, err)

	assert.False(t, res.HitMine)
	assert.Len(t, res.Revealed, 24)
	assert.True(t, CheckWin(b))

	c, _ := b.Cell(0, 0)
	assert.False(t, c.Revealed, "the mine stays hidden")
}

func TestRevealFloodStopsAtRing(t *testing.T) {
	// A wall of mines down column 2 splits the board.
	b := mustBoard(t, 5, Point{2, 0}, Point{2, 1}, Point{2, 2}, Point{2, 3}, Point{2, 4})

	res, err := Reveal(b, 0, 0)
	require.NoError(t, err)
	require.Len(t, res.Revealed, 10)

	for y := 0; y < 5; y++ {
		left, _ := b.Cell(0, y)
		ring, _ := b.Cell(1, y)
		far, _ := b.Cell(3, y)
		assert.True(t, left.Revealed)
		assert.Zero(t, left.Adjacent)
		assert.True(t, ring.Revealed, "numbered ring is revealed")
		assert.Positive(t, ring.Adjacent)
		assert.False(t, far.Revealed, "flood must not cross the wall")
	}
	assert.False(t, CheckWin(b))
}

func TestRevealNumberedCellDoesNotExpand(t *testing.T) {
	b := mustBoard(t, 5, Point{0, 0})

	res, err := Reveal(b, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []Point{{1, 1}}, res.Revealed)
}

func TestRevealNeverOpensFlaggedCells(t *testing.T) {
	b := mustBoard(t, 5, Point{0, 0})

	state, err := ToggleFlag(b, 4, 4)
	require.NoError(t, err)
	require.Equal(t, FlagFlagged, state)

	res, err := Reveal(b, 2, 2)
	require.NoError(t, err)
	assert.Len(t, res.Revealed, 23)
	assert.NotContains(t, res.Revealed, Point{4, 4})
	assert.False(t, CheckWin(b), "flagged safe cell is still hidden")

	// Flagged cells cannot be revealed directly either.
	res, err = Reveal(b, 4, 4)
	require.NoError(t, err)
	assert.Empty(t, res.Revealed)
}

func TestRevealQuestionedCell(t *testing.T) {
	b := mustBoard(t, 3, Point{0, 0})

	ToggleFlag(b, 2, 2)
	ToggleFlag(b, 2, 2)
	c, _ := b.Cell(2, 2)
	require.Equal(t, FlagQuestioned, c.Flag)

	res, err := Reveal(b, 2, 2)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Revealed)

	c, _ = b.Cell(2, 2)
	assert.True(t, c.Revealed)
	assert.Equal(t, FlagNone, c.Flag)
}

func TestRevealMine(t *testing.T) {
	b := mustBoard(t, 3, Point{0, 0})

	res, err := Reveal(b, 0, 0)
	require.NoError(t, err)
	assert.True(t, res.HitMine)
	assert.Equal(t, []Point{{0, 0}}, res.Revealed)
}

func TestRevealAlreadyRevealedIsNoop(t *testing.T) {
	b := mustBoard(t, 3, Point{0, 0})

	_, err := Reveal(b, 1, 1)
	require.NoError(t, err)
	hidden := b.HiddenSafe()

	res, err := Reveal(b, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, res.Revealed)
	assert.Equal(t, hidden, b.HiddenSafe())
}

func TestOutOfBoundsDoesNotMutate(t *testing.T) {
	b := mustBoard(t, 3, Point{0, 0})
	before := append([]Cell(nil), b.cells...)

	_, err := Reveal(b, 3, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = Reveal(b, 0, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = ToggleFlag(b, -1, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = Chord(b, 0, 5)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	assert.Equal(t, before, b.cells)
}

func TestToggleFlagCycle(t *testing.T) {
	b := mustBoard(t, 3, Point{0, 0})

	expected := []FlagState{FlagFlagged, FlagQuestioned, FlagNone, FlagFlagged, FlagQuestioned, FlagNone}
	for i, want := range expected {
		got, err := ToggleFlag(b, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, want, got, "toggle #%d", i+1)
	}
}

func TestToggleFlagOnRevealedCellIsNoop(t *testing.T) {
	b := mustBoard(t, 3, Point{0, 0})
	_, err := Reveal(b, 1, 1)
	require.NoError(t, err)

	state, err := ToggleFlag(b, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, FlagNone, state)

	c, _ := b.Cell(1, 1)
	assert.Equal(t, FlagNone, c.Flag)
}

func TestChordMatchingFlags(t *testing.T) {
	b := mustBoard(t, 3, Point{0, 0})
	_, err := Reveal(b, 1, 1)
	require.NoError(t, err)

	// No flags yet: under-flagged chord does nothing.
	res, err := Chord(b, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, res.Revealed)

	ToggleFlag(b, 0, 0)
	res, err = Chord(b, 1, 1)
	require.NoError(t, err)
	assert.False(t, res.HitMine)
	assert.Len(t, res.Revealed, 7)
	assert.True(t, CheckWin(b))
}

func TestChordOverFlaggedIsNoop(t *testing.T) {
	b := mustBoard(t, 3, Point{0, 0})
	_, err := Reveal(b, 1, 1)
	require.NoError(t, err)

	ToggleFlag(b, 0, 0)
	ToggleFlag(b, 2, 2)

	res, err := Chord(b, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, res.Revealed)
	assert.Equal(t, 7, b.HiddenSafe())
}

func TestChordQuestionMarksDoNotCount(t *testing.T) {
	b := mustBoard(t, 3, Point{0, 0})
	_, err := Reveal(b, 1, 1)
	require.NoError(t, err)

	ToggleFlag(b, 0, 0)
	ToggleFlag(b, 0, 0) // questioned

	res, err := Chord(b, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, res.Revealed)
}

func TestChordWrongFlagHitsMine(t *testing.T) {
	b := mustBoard(t, 3, Point{0, 0})
	_, err := Reveal(b, 1, 1)
	require.NoError(t, err)

	ToggleFlag(b, 2, 2) // wrong cell, right count

	res, err := Chord(b, 1, 1)
	require.NoError(t, err)
	assert.True(t, res.HitMine)
	assert.Contains(t, res.Revealed, Point{0, 0})
	assert.NotContains(t, res.Revealed, Point{2, 2})
}

func TestChordIgnoresHiddenAndZeroCells(t *testing.T) {
	b := mustBoard(t, 4, Point{0, 0})

	res, err := Chord(b, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, res.Revealed, "hidden cell")

	_, err = Reveal(b, 3, 3)
	require.NoError(t, err)
	res, err = Chord(b, 3, 3)
	require.NoError(t, err)
	assert.Empty(t, res.Revealed, "zero cell")
}

func TestWinSameEndStateByFloodOrSingleReveals(t *testing.T) {
	const size, mines = 12, 20

	flood, err := NewBoard(size, mines, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	single, err := NewBoard(size, mines, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	// Flood-driven: reveal every safe cell in order, letting floods do most of the work.
	for i, c := range flood.cells {
		if !c.Mine {
			p := flood.point(i)
			_, err := Reveal(flood, p.X, p.Y)
			require.NoError(t, err)
		}
	}

	// Single reveals: open numbered cells first so every zero cell is opened
	// with as little flooding as possible.
	for pass := 0; pass < 2; pass++ {
		for i, c := range single.cells {
			if c.Mine || (pass == 0 && c.Adjacent == 0) {
				continue
			}
			p := single.point(i)
			_, err := Reveal(single, p.X, p.Y)
			require.NoError(t, err)
		}
	}

	assert.True(t, CheckWin(flood))
	assert.True(t, CheckWin(single))
	assert.Equal(t, revealedSet(flood), revealedSet(single))
	assert.Len(t, revealedSet(flood), size*size-mines)
}

func TestRevealLargeEmptyBoard(t *testing.T) {
	b := mustBoard(t, 500)

	res, err := Reveal(b, 250, 250)
	require.NoError(t, err)
	assert.Len(t, res.Revealed, 500*500)
	assert.True(t, CheckWin(b))
}

func TestRevealMines(t *testing.T) {
	b := mustBoard(t, 3, Point{0, 0}, Point{2, 2})
	ToggleFlag(b, 2, 2)

	opened := RevealMines(b)
	assert.Equal(t, []Point{{0, 0}, {2, 2}}, opened)

	c, _ := b.Cell(2, 2)
	assert.True(t, c.Revealed)
	assert.Equal(t, FlagFlagged, c.Flag, "flag is kept for display")

	st, err := ToggleFlag(b, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, FlagFlagged, st, "revealed cells are left untouched")

	assert.Empty(t, RevealMines(b))
}
