package minesweeper

import "strings"

// Snapshot captures the visible game state for determinism tests.
type Snapshot struct {
	Tick           uint64
	Seed           int64
	Status         Status
	ElapsedSeconds int
	MinesRemaining int
	Cursor         Point
	Rows           []string // one string per board row, glyphs as rendered
}

// Snapshot returns the current visible state.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{Tick: g.tick}
	}
	st := g.session.Status()
	return Snapshot{
		Tick:           g.tick,
		Seed:           g.session.Seed(),
		Status:         st.Status,
		ElapsedSeconds: st.ElapsedSeconds,
		MinesRemaining: st.MinesRemaining,
		Cursor:         g.Cursor(),
		Rows:           VisibleRows(g.session),
	}
}

// VisibleRows renders the board as the player sees it, one string per row.
func VisibleRows(s *Session) []string {
	b := s.Board()
	status := s.Status().Status
	hit, hasHit := s.Exploded()

	rows := make([]string, b.Size())
	var sb strings.Builder
	for y := 0; y < b.Size(); y++ {
		sb.Reset()
		for x := 0; x < b.Size(); x++ {
			r, _ := Glyph(b.cells[b.index(x, y)], status, hasHit && hit == Point{X: x, Y: y})
			sb.WriteRune(r)
		}
		rows[y] = sb.String()
	}
	return rows
}
