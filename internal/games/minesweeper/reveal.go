package minesweeper

// RevealResult describes the effect of a reveal or chord.
// Revealed lists every cell that went from hidden to revealed, in the order
// they were opened; it is empty for a no-op.
type RevealResult struct {
	HitMine  bool
	Revealed []Point
}

func (r *RevealResult) merge(o RevealResult) {
	r.HitMine = r.HitMine || o.HitMine
	r.Revealed = append(r.Revealed, o.Revealed...)
}

// Reveal opens the cell at (x, y).
//
// Revealed and flagged cells are left alone. A mine ends the reveal with
// HitMine set. A cell with no adjacent mines opens its whole zero region
// plus the numbered ring around it, skipping flagged cells.
func Reveal(b *Board, x, y int) (RevealResult, error) {
	if !b.InBounds(x, y) {
		return RevealResult{}, ErrOutOfBounds
	}

	start := Point{X: x, Y: y}
	c := b.at(start)
	if c.Revealed || c.Flag == FlagFlagged {
		return RevealResult{}, nil
	}

	b.open(c)
	if c.Mine {
		return RevealResult{HitMine: true, Revealed: []Point{start}}, nil
	}

	res := RevealResult{Revealed: []Point{start}}
	if c.Adjacent > 0 {
		return res, nil
	}

	// Cells are opened when pushed, so the Revealed bit doubles as the
	// visited set and nothing is queued twice.
	stack := []Point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range b.NeighborsOf(p.X, p.Y) {
			nc := b.at(n)
			if nc.Revealed || nc.Flag == FlagFlagged {
				continue
			}
			b.open(nc)
			res.Revealed = append(res.Revealed, n)
			if nc.Adjacent == 0 {
				stack = append(stack, n)
			}
		}
	}

	return res, nil
}

// open marks a cell revealed. A question mark does not survive opening.
func (b *Board) open(c *Cell) {
	c.Revealed = true
	c.Flag = FlagNone
	if !c.Mine {
		b.hiddenSafe--
	}
}

// ToggleFlag cycles the mark on an unrevealed cell:
// none -> flagged -> questioned -> none. Revealed cells are left untouched;
// a flagged mine opened by RevealMines keeps its flag.
func ToggleFlag(b *Board, x, y int) (FlagState, error) {
	if !b.InBounds(x, y) {
		return FlagNone, ErrOutOfBounds
	}

	c := b.at(Point{X: x, Y: y})
	if c.Revealed {
		return c.Flag, nil
	}

	switch c.Flag {
	case FlagNone:
		c.Flag = FlagFlagged
	case FlagFlagged:
		c.Flag = FlagQuestioned
	default:
		c.Flag = FlagNone
	}
	return c.Flag, nil
}

// Chord reveals every hidden, unflagged neighbor of a revealed number once
// the number of flagged neighbors matches it. The flags are trusted by count
// only, so a misplaced flag can make the chord open a mine.
func Chord(b *Board, x, y int) (RevealResult, error) {
	if !b.InBounds(x, y) {
		return RevealResult{}, ErrOutOfBounds
	}

	c := b.at(Point{X: x, Y: y})
	if !c.Revealed || c.Mine || c.Adjacent == 0 {
		return RevealResult{}, nil
	}

	neighbors := b.NeighborsOf(x, y)
	flagged := 0
	for _, n := range neighbors {
		if b.at(n).Flag == FlagFlagged {
			flagged++
		}
	}
	if flagged != c.Adjacent {
		return RevealResult{}, nil
	}

	var res RevealResult
	for _, n := range neighbors {
		nc := b.at(n)
		if nc.Revealed || nc.Flag == FlagFlagged {
			continue
		}
		r, err := Reveal(b, n.X, n.Y)
		if err != nil {
			return res, err
		}
		res.merge(r)
	}
	return res, nil
}

// CheckWin reports whether every non-mine cell has been revealed.
func CheckWin(b *Board) bool {
	return b.hiddenSafe == 0
}

// RevealMines opens every mine that is still hidden, flagged or not, and
// returns the ones it opened. Used to show the layout once a game ends.
func RevealMines(b *Board) []Point {
	var out []Point
	for i := range b.cells {
		c := &b.cells[i]
		if c.Mine && !c.Revealed {
			c.Revealed = true
			out = append(out, b.point(i))
		}
	}
	return out
}
