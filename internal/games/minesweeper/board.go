// Package minesweeper implements the board-reveal engine and the game
// session on top of it, plus the adapter the terminal platform drives.
package minesweeper

import (
	"fmt"
	"math/rand"
)

// MaxBoardSize is the largest accepted board edge.
const MaxBoardSize = 1 << 12

// FlagState is the player's mark on an unrevealed cell.
type FlagState int

const (
	FlagNone FlagState = iota
	FlagFlagged
	FlagQuestioned
)

// String returns the mark name.
func (f FlagState) String() string {
	switch f {
	case FlagNone:
		return "none"
	case FlagFlagged:
		return "flagged"
	case FlagQuestioned:
		return "questioned"
	default:
		return "unknown"
	}
}

// Point is a board coordinate: X is the column, Y the row.
type Point struct {
	X, Y int
}

// Cell is one square of the board.
// Adjacent is only meaningful when Mine is false.
type Cell struct {
	Mine     bool
	Revealed bool
	Flag     FlagState
	Adjacent int
}

// Board is a size×size grid with a fixed mine layout.
type Board struct {
	size      int
	mineCount int
	cells     []Cell // row-major, index y*size+x

	// hiddenSafe counts unrevealed non-mine cells; zero means the board is cleared.
	hiddenSafe int
}

// NewBoard places mineCount mines uniformly at random without replacement.
// The layout is fully determined by rng.
func NewBoard(size, mineCount int, rng *rand.Rand) (*Board, error) {
	if err := validate(size, mineCount); err != nil {
		return nil, err
	}

	b := newEmptyBoard(size, mineCount)

	// Partial Fisher-Yates: the first mineCount slots of the permutation are mines.
	positions := make([]int, size*size)
	for i := range positions {
		positions[i] = i
	}
	for i := 0; i < mineCount; i++ {
		j := i + rng.Intn(len(positions)-i)
		positions[i], positions[j] = positions[j], positions[i]
		b.cells[positions[i]].Mine = true
	}

	b.computeAdjacency()
	return b, nil
}

// NewBoardWithMines builds a board with an explicit mine layout.
func NewBoardWithMines(size int, mines []Point) (*Board, error) {
	if err := validate(size, len(mines)); err != nil {
		return nil, err
	}

	b := newEmptyBoard(size, len(mines))
	for _, p := range mines {
		if !b.InBounds(p.X, p.Y) {
			return nil, fmt.Errorf("%w: mine at (%d,%d) outside %dx%d board", ErrInvalidConfig, p.X, p.Y, size, size)
		}
		i := b.index(p.X, p.Y)
		if b.cells[i].Mine {
			return nil, fmt.Errorf("%w: duplicate mine at (%d,%d)", ErrInvalidConfig, p.X, p.Y)
		}
		b.cells[i].Mine = true
	}

	b.computeAdjacency()
	return b, nil
}

func validate(size, mineCount int) error {
	if size < 1 {
		return fmt.Errorf("%w: size %d must be at least 1", ErrInvalidConfig, size)
	}
	if size > MaxBoardSize {
		return fmt.Errorf("%w: size %d exceeds the maximum of %d", ErrInvalidConfig, size, MaxBoardSize)
	}
	if mineCount < 0 || mineCount >= size*size {
		return fmt.Errorf("%w: %d mines do not fit a %dx%d board", ErrInvalidConfig, mineCount, size, size)
	}
	return nil
}

func newEmptyBoard(size, mineCount int) *Board {
	return &Board{
		size:       size,
		mineCount:  mineCount,
		cells:      make([]Cell, size*size),
		hiddenSafe: size*size - mineCount,
	}
}

// computeAdjacency fills Adjacent for every non-mine cell.
func (b *Board) computeAdjacency() {
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			i := b.index(x, y)
			if b.cells[i].Mine {
				continue
			}
			n := 0
			for _, p := range b.NeighborsOf(x, y) {
				if b.cells[b.index(p.X, p.Y)].Mine {
					n++
				}
			}
			b.cells[i].Adjacent = n
		}
	}
}

// Size returns the board edge length.
func (b *Board) Size() int {
	return b.size
}

// MineCount returns the number of mines on the board.
func (b *Board) MineCount() int {
	return b.mineCount
}

// InBounds reports whether (x, y) is on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

// Cell returns a copy of the cell at (x, y).
func (b *Board) Cell(x, y int) (Cell, error) {
	if !b.InBounds(x, y) {
		return Cell{}, ErrOutOfBounds
	}
	return b.cells[b.index(x, y)], nil
}

// NeighborsOf returns the in-bounds cells at Chebyshev distance 1,
// in row-major order.
func (b *Board) NeighborsOf(x, y int) []Point {
	out := make([]Point, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if b.InBounds(nx, ny) {
				out = append(out, Point{X: nx, Y: ny})
			}
		}
	}
	return out
}

// Mines returns the positions of all mines in row-major order.
func (b *Board) Mines() []Point {
	out := make([]Point, 0, b.mineCount)
	for i, c := range b.cells {
		if c.Mine {
			out = append(out, b.point(i))
		}
	}
	return out
}

// HiddenSafe returns the number of unrevealed non-mine cells.
func (b *Board) HiddenSafe() int {
	return b.hiddenSafe
}

// CellView is the externally visible state of one cell. Mine and Adjacent
// are only filled in once the cell is revealed.
type CellView struct {
	X, Y     int
	Revealed bool
	Flag     FlagState
	Mine     bool
	Adjacent int
}

// View returns what a player is allowed to see at (x, y).
func (b *Board) View(x, y int) (CellView, error) {
	if !b.InBounds(x, y) {
		return CellView{}, ErrOutOfBounds
	}
	return b.view(x, y), nil
}

func (b *Board) view(x, y int) CellView {
	c := b.cells[b.index(x, y)]
	v := CellView{X: x, Y: y, Revealed: c.Revealed, Flag: c.Flag}
	if c.Revealed {
		v.Mine = c.Mine
		v.Adjacent = c.Adjacent
	}
	return v
}

func (b *Board) index(x, y int) int {
	return y*b.size + x
}

func (b *Board) point(i int) Point {
	return Point{X: i % b.size, Y: i / b.size}
}

func (b *Board) at(p Point) *Cell {
	return &b.cells[b.index(p.X, p.Y)]
}

// Validate checks a size and mine count without building a board.
func Validate(size, mineCount int) error {
	return validate(size, mineCount)
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
