package minesweeper

import (
	"fmt"

	"github.com/vovakirdan/tui-sweeper/internal/core"
)

const (
	cellWidth    = 2 // glyph + gap
	hudHeight    = 2
	footerHeight = 2
)

// layout is where the board sits on the screen.
type layout struct {
	box     core.Rect // border rectangle
	originX int       // screen column of cell (0, 0)
	originY int       // screen row of cell (0, 0)
}

func (g *Game) layout() layout {
	n := g.opts.Size
	w := n*cellWidth + 3 // borders plus leading gap
	h := n + 2
	x := core.Clamp((g.screenW-w)/2, 0, g.screenW)
	box := core.NewRect(x, hudHeight, w, h)
	return layout{box: box, originX: box.X + 2, originY: box.Y + 1}
}

// CellAt maps a screen position to a board cell. Both the glyph column and
// the gap after it belong to the cell.
func (g *Game) CellAt(sx, sy int) (Point, bool) {
	l := g.layout()
	cells := core.NewRect(l.originX, l.originY, g.opts.Size*cellWidth, g.opts.Size)
	if !cells.Contains(sx, sy) {
		return Point{}, false
	}
	return Point{X: (sx - l.originX) / cellWidth, Y: sy - l.originY}, true
}

var numberColors = [9]core.Color{
	core.ColorDefault,
	core.ColorBrightBlue,
	core.ColorGreen,
	core.ColorBrightRed,
	core.ColorMagenta,
	core.ColorOrange,
	core.ColorCyan,
	core.ColorWhite,
	core.ColorGray,
}

// Glyph returns the character and color for a cell as the player sees it.
// Once a game is lost, wrong flags are shown as X.
func Glyph(c Cell, status Status, exploded bool) (rune, core.Color) {
	switch {
	case c.Revealed && c.Mine && exploded:
		return '@', core.ColorBrightRed
	case c.Revealed && c.Mine && c.Flag == FlagFlagged:
		return 'F', core.ColorGreen
	case c.Revealed && c.Mine:
		return '*', core.ColorRed
	case c.Revealed && c.Adjacent == 0:
		return ' ', core.ColorDefault
	case c.Revealed:
		return rune('0' + c.Adjacent), numberColors[c.Adjacent]
	case c.Flag == FlagFlagged && status == StatusLost && !c.Mine:
		return 'X', core.ColorYellow
	case c.Flag == FlagFlagged:
		return 'F', core.ColorRed
	case c.Flag == FlagQuestioned:
		return '?', core.ColorYellow
	default:
		return '.', core.ColorGray
	}
}

// Render draws the board, HUD and footer into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst, l)
	dst.DrawBox(l.box)
	g.renderCells(dst, l)
	g.renderFooter(dst, l)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	l := g.layout()
	hint := fmt.Sprintf("Need %dx%d", l.box.W, l.box.Bottom()+footerHeight)
	dst.DrawTextCentered(y+1, hint, core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, l layout) {
	st := g.session.Status()

	dst.DrawTextColored(l.box.X, 0, g.Title(), core.ColorYellow)

	info := fmt.Sprintf("Mines %3d  Time %03d", st.MinesRemaining, min(st.ElapsedSeconds, 999))
	x := max(l.box.Right()-len(info), l.box.X)
	dst.DrawText(x, 1, info)
}

func (g *Game) renderCells(dst *core.Screen, l layout) {
	b := g.session.Board()
	status := g.session.Status().Status
	hit, hasHit := g.session.Exploded()

	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			c := b.cells[b.index(x, y)]
			r, color := Glyph(c, status, hasHit && hit == Point{X: x, Y: y})
			dst.SetColored(l.originX+x*cellWidth, l.originY+y, r, color)
		}
	}

	if !status.Terminal() {
		cx := l.originX + g.cursorX*cellWidth
		cy := l.originY + g.cursorY
		dst.SetColored(cx-1, cy, '[', core.ColorBrightBlue)
		dst.SetColored(cx+1, cy, ']', core.ColorBrightBlue)
	}
}

func (g *Game) renderFooter(dst *core.Screen, l layout) {
	y := l.box.Bottom()
	st := g.session.Status()

	switch st.Status {
	case StatusWon:
		dst.DrawTextCentered(y, fmt.Sprintf("Cleared in %ds!", st.ElapsedSeconds), core.ColorGreen)
		dst.DrawTextCentered(y+1, "R: new board  Q: quit", core.ColorGray)
	case StatusLost:
		dst.DrawTextCentered(y, "BOOM! You hit a mine.", core.ColorBrightRed)
		dst.DrawTextCentered(y+1, "R: new board  Q: quit", core.ColorGray)
	default:
		dst.DrawTextCentered(y, "Arrows move  Space reveal  F flag  C chord", core.ColorGray)
		dst.DrawTextCentered(y+1, "R: new board  Q: quit", core.ColorGray)
	}
}
