package minesweeper

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Status is the lifecycle stage of a session.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusWon
	StatusLost
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session is over.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Outcome is reported once when a session reaches a terminal status.
type Outcome struct {
	SessionID      string
	Size           int
	Mines          int
	Seed           int64
	Won            bool
	ElapsedSeconds int
	EndedAt        time.Time
}

// SessionOptions configures a new session.
type SessionOptions struct {
	Size  int
	Mines int

	// Seed drives mine placement. Zero picks a time-based seed.
	Seed int64

	// Layout, when set, fixes the mine positions and overrides Seed.
	// Mines must be zero or equal to len(Layout).
	Layout []Point

	// Clock defaults to time.Now.
	Clock func() time.Time

	// OnEnd is called exactly once, when the session is won or lost.
	OnEnd func(Outcome)

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Update is the result of a reveal or chord as seen by the presentation layer.
type Update struct {
	Changed []CellView
	Status  Status
}

// FlagChange is the result of a flag toggle.
type FlagChange struct {
	X, Y           int
	Flag           FlagState
	MinesRemaining int
}

// StatusView summarizes the session for a HUD.
type StatusView struct {
	Status         Status
	ElapsedSeconds int
	MinesRemaining int
}

// Session is a single game: one board plus turn-level state.
// It is not safe for concurrent use; the presentation layer drives it one
// action at a time.
type Session struct {
	id     string
	seed   int64
	board  *Board
	status Status

	startedAt time.Time
	endedAt   time.Time
	flags     int
	reported  bool
	exploded  *Point

	now    func() time.Time
	onEnd  func(Outcome)
	logger *log.Logger
}

// NewSession builds the board and returns a session in StatusNotStarted.
func NewSession(opts SessionOptions) (*Session, error) {
	s := &Session{
		id:     uuid.NewString(),
		seed:   opts.Seed,
		status: StatusNotStarted,
		now:    opts.Clock,
		onEnd:  opts.OnEnd,
		logger: opts.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	var err error
	if opts.Layout != nil {
		if opts.Mines != 0 && opts.Mines != len(opts.Layout) {
			return nil, fmt.Errorf("%w: layout has %d mines, expected %d", ErrInvalidConfig, len(opts.Layout), opts.Mines)
		}
		s.board, err = NewBoardWithMines(opts.Size, opts.Layout)
	} else {
		if s.seed == 0 {
			s.seed = time.Now().UnixNano()
		}
		s.board, err = NewBoard(opts.Size, opts.Mines, newRand(s.seed))
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("session created", "id", s.id, "size", opts.Size, "mines", s.board.MineCount(), "seed", s.seed)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Seed returns the seed the board was generated from (0 for fixed layouts).
func (s *Session) Seed() int64 {
	return s.seed
}

// Board exposes the board for rendering. Callers must not mutate it.
func (s *Session) Board() *Board {
	return s.board
}

// Reveal opens (x, y). The first reveal starts the clock.
// Terminal sessions ignore the call.
func (s *Session) Reveal(x, y int) (Update, error) {
	if !s.board.InBounds(x, y) {
		return Update{Status: s.status}, ErrOutOfBounds
	}
	if s.status.Terminal() {
		return Update{Status: s.status}, nil
	}

	if s.status == StatusNotStarted {
		s.status = StatusInProgress
		s.startedAt = s.now()
		s.logger.Debug("session started", "id", s.id)
	}

	res, err := Reveal(s.board, x, y)
	if err != nil {
		return Update{Status: s.status}, err
	}
	return s.settle(res), nil
}

// ToggleFlag cycles the mark at (x, y). Only allowed while in progress.
func (s *Session) ToggleFlag(x, y int) (FlagChange, error) {
	change := FlagChange{X: x, Y: y, MinesRemaining: s.minesRemaining()}
	before, err := s.board.Cell(x, y)
	if err != nil {
		return change, err
	}
	if s.status != StatusInProgress {
		change.Flag = before.Flag
		return change, nil
	}

	after, err := ToggleFlag(s.board, x, y)
	if err != nil {
		return change, err
	}

	if before.Flag != FlagFlagged && after == FlagFlagged {
		s.flags++
	} else if before.Flag == FlagFlagged && after != FlagFlagged {
		s.flags--
	}

	change.Flag = after
	change.MinesRemaining = s.minesRemaining()
	return change, nil
}

// Chord reveals around a satisfied number. Only allowed while in progress.
func (s *Session) Chord(x, y int) (Update, error) {
	if !s.board.InBounds(x, y) {
		return Update{Status: s.status}, ErrOutOfBounds
	}
	if s.status != StatusInProgress {
		return Update{Status: s.status}, nil
	}
	res, err := Chord(s.board, x, y)
	if err != nil {
		return Update{Status: s.status}, err
	}
	return s.settle(res), nil
}

// Forfeit ends an in-progress session as a loss.
func (s *Session) Forfeit() Update {
	if s.status != StatusInProgress {
		return Update{Status: s.status}
	}
	u := Update{}
	for _, p := range RevealMines(s.board) {
		u.Changed = append(u.Changed, s.board.view(p.X, p.Y))
	}
	s.finish(false)
	u.Status = s.status
	return u
}

// Exploded returns the mine that ended a lost game, if any.
func (s *Session) Exploded() (Point, bool) {
	if s.exploded == nil {
		return Point{}, false
	}
	return *s.exploded, true
}

// Status returns the HUD summary.
func (s *Session) Status() StatusView {
	return StatusView{
		Status:         s.status,
		ElapsedSeconds: s.Elapsed(),
		MinesRemaining: s.minesRemaining(),
	}
}

// Elapsed returns whole seconds since the first reveal, frozen at the end.
func (s *Session) Elapsed() int {
	switch {
	case s.status == StatusNotStarted:
		return 0
	case s.status.Terminal():
		return int(s.endedAt.Sub(s.startedAt) / time.Second)
	default:
		return int(s.now().Sub(s.startedAt) / time.Second)
	}
}

func (s *Session) minesRemaining() int {
	return max(s.board.MineCount()-s.flags, 0)
}

// settle converts an engine result to an Update and applies win/loss.
func (s *Session) settle(res RevealResult) Update {
	u := Update{Changed: make([]CellView, 0, len(res.Revealed))}
	for _, p := range res.Revealed {
		u.Changed = append(u.Changed, s.board.view(p.X, p.Y))
	}

	switch {
	case res.HitMine:
		for _, p := range res.Revealed {
			if s.board.at(p).Mine {
				hit := p
				s.exploded = &hit
				break
			}
		}
		s.appendMines(&u)
		s.finish(false)
	case CheckWin(s.board):
		s.appendMines(&u)
		s.finish(true)
	}

	u.Status = s.status
	return u
}

func (s *Session) appendMines(u *Update) {
	for _, p := range RevealMines(s.board) {
		u.Changed = append(u.Changed, s.board.view(p.X, p.Y))
	}
}

func (s *Session) finish(won bool) {
	s.endedAt = s.now()
	if won {
		s.status = StatusWon
	} else {
		s.status = StatusLost
	}

	s.logger.Info("session ended", "id", s.id, "status", s.status, "elapsed", s.Elapsed())

	if s.reported {
		return
	}
	s.reported = true
	if s.onEnd != nil {
		s.onEnd(Outcome{
			SessionID:      s.id,
			Size:           s.board.Size(),
			Mines:          s.board.MineCount(),
			Seed:           s.seed,
			Won:            won,
			ElapsedSeconds: s.Elapsed(),
			EndedAt:        s.endedAt,
		})
	}
}
