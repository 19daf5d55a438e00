package minesweeper

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sweeper/internal/core"
)

// Options configures the playable game.
type Options struct {
	Size  int
	Mines int

	// Label names the difficulty in the HUD (e.g. "Easy").
	Label string

	// OnEnd receives every finished session, including forfeits.
	OnEnd func(Outcome)

	Logger *log.Logger
}

// Game adapts a Session to the tick-driven platform: it owns the cursor,
// the screen layout and restarts.
type Game struct {
	opts    Options
	session *Session
	tick    uint64

	cursorX int
	cursorY int

	screenW  int
	screenH  int
	tooSmall bool
}

// New validates the options and returns a game ready for Reset.
func New(opts Options) (*Game, error) {
	if err := validate(opts.Size, opts.Mines); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Game{opts: opts}, nil
}

// ID returns the game identifier used in logs.
func (g *Game) ID() string {
	return "minesweeper"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.opts.Label == "" {
		return "Minesweeper"
	}
	return "Minesweeper (" + g.opts.Label + ")"
}

// Reset starts a new board. An unfinished previous board is forfeited.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.Abandon()

	session, err := NewSession(SessionOptions{
		Size:   g.opts.Size,
		Mines:  g.opts.Mines,
		Seed:   cfg.Seed,
		OnEnd:  g.opts.OnEnd,
		Logger: g.opts.Logger,
	})
	if err != nil {
		// Options were validated in New.
		panic(err)
	}

	g.session = session
	g.tick = 0
	g.cursorX = g.opts.Size / 2
	g.cursorY = g.opts.Size / 2
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Abandon forfeits the current board if it is in progress.
func (g *Game) Abandon() {
	if g.session != nil {
		g.session.Forfeit()
	}
}

// Resize updates the layout for a new terminal size without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	l := g.layout()
	g.tooSmall = w < l.box.W || h < l.box.Bottom()+footerHeight
}

// Session returns the current session.
func (g *Game) Session() *Session {
	return g.session
}

// Cursor returns the cursor position on the board.
func (g *Game) Cursor() Point {
	return Point{X: g.cursorX, Y: g.cursorY}
}

// Step applies the input collected since the last tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.session == nil {
		return core.StepResult{State: g.State()}
	}

	changed := false

	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(0, -1)
	case in.Has(core.ActionDown):
		g.moveCursor(0, 1)
	case in.Has(core.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionRight):
		g.moveCursor(1, 0)
	}

	switch {
	case in.Has(core.ActionReveal):
		changed = g.apply(core.ActionReveal, g.cursorX, g.cursorY) || changed
	case in.Has(core.ActionFlag):
		changed = g.apply(core.ActionFlag, g.cursorX, g.cursorY) || changed
	case in.Has(core.ActionChord):
		changed = g.apply(core.ActionChord, g.cursorX, g.cursorY) || changed
	}

	for _, c := range in.Clicks {
		p, ok := g.CellAt(c.X, c.Y)
		if !ok {
			continue
		}
		g.cursorX, g.cursorY = p.X, p.Y
		changed = g.apply(c.Action, p.X, p.Y) || changed
	}

	return core.StepResult{State: g.State(), Changed: changed}
}

func (g *Game) moveCursor(dx, dy int) {
	n := g.opts.Size
	g.cursorX = core.Wrap(g.cursorX+dx, n)
	g.cursorY = core.Wrap(g.cursorY+dy, n)
}

// apply runs one board action and reports whether anything changed.
// Coordinates come from the cursor or from CellAt, so they are in bounds.
func (g *Game) apply(a core.Action, x, y int) bool {
	switch a {
	case core.ActionReveal:
		u, err := g.session.Reveal(x, y)
		return err == nil && len(u.Changed) > 0
	case core.ActionFlag:
		before, _ := g.session.Board().Cell(x, y)
		fc, err := g.session.ToggleFlag(x, y)
		return err == nil && fc.Flag != before.Flag
	case core.ActionChord:
		u, err := g.session.Chord(x, y)
		return err == nil && len(u.Changed) > 0
	}
	return false
}

// State returns the platform-facing game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.Status()
	return core.GameState{
		Elapsed:  st.ElapsedSeconds,
		Started:  st.Status != StatusNotStarted,
		GameOver: st.Status.Terminal(),
		Won:      st.Status == StatusWon,
	}
}
