package stats

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper"
)

// ErrPersistenceUnavailable marks a failed read or write of stored
// statistics. Callers keep playing on the in-memory copy.
var ErrPersistenceUnavailable = errors.New("stats: persistence unavailable")

// Backend stores the whole statistics table.
type Backend interface {
	// ReadAll returns the stored table. A backend with nothing stored yet
	// returns DefaultTable and no error.
	ReadAll() (Table, error)
	// WriteAll replaces the stored table. It must be atomic: a failed
	// write leaves the previous table readable.
	WriteAll(Table) error
}

// GameRecord is one finished game, kept by backends that also implement Journal.
type GameRecord struct {
	SessionID      string
	Difficulty     Difficulty
	Size           int
	Mines          int
	Won            bool
	ElapsedSeconds int
	PlayedAt       time.Time
}

// Journal is implemented by backends that keep per-game history.
type Journal interface {
	AppendGame(GameRecord) error
}

// Store is the read/update surface for statistics. It assumes a single
// writer per stats location; the mutex only serializes callers in this
// process.
type Store struct {
	mu      sync.Mutex
	backend Backend
	table   Table
	logger  *log.Logger

	// dirty is set while the cached table is ahead of the backend.
	dirty bool
}

// NewStore wraps a backend. A nil backend keeps statistics in memory.
func NewStore(backend Backend, logger *log.Logger) *Store {
	if backend == nil {
		backend = NewMemory()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{backend: backend, table: DefaultTable(), logger: logger}
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Load reads the stored table. It never fails: a missing, unreadable or
// corrupt store yields the last known table (zeroed on first use).
func (s *Store) Load() Table {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh()
	return s.table.Clone()
}

// refresh replaces the cached table with the stored one when it can be
// read and no unsaved results are pending.
func (s *Store) refresh() {
	if s.dirty {
		return
	}
	t, err := s.backend.ReadAll()
	if err == nil {
		t, err = t.normalize()
	}
	if err != nil {
		s.logger.Warn("stats unreadable, using defaults", "error", err)
		return
	}
	s.table = t
}

// RecordResult folds one game into the difficulty's record and persists
// the whole table. If the write fails the in-memory table still advances
// and the error wraps ErrPersistenceUnavailable.
func (s *Store) RecordResult(d Difficulty, won bool, elapsedSeconds int) (Record, error) {
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh()
	rec := s.table[d].Apply(won, elapsedSeconds)
	s.table[d] = rec

	if err := s.backend.WriteAll(s.table.Clone()); err != nil {
		s.dirty = true
		s.logger.Error("failed to persist stats", "difficulty", d, "error", err)
		return rec, fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
	s.dirty = false

	s.logger.Debug("stats recorded", "difficulty", d, "won", won, "elapsed", elapsedSeconds)
	return rec, nil
}

// RecordOutcome classifies a finished session, records it and appends it
// to the journal when the backend keeps one.
func (s *Store) RecordOutcome(o minesweeper.Outcome) (Record, error) {
	d := Classify(o.Size, o.Mines)
	rec, err := s.RecordResult(d, o.Won, o.ElapsedSeconds)

	j, ok := s.backend.(Journal)
	if !ok {
		return rec, err
	}

	playedAt := o.EndedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}
	jerr := j.AppendGame(GameRecord{
		SessionID:      o.SessionID,
		Difficulty:     d,
		Size:           o.Size,
		Mines:          o.Mines,
		Won:            o.Won,
		ElapsedSeconds: o.ElapsedSeconds,
		PlayedAt:       playedAt,
	})
	if jerr != nil {
		s.logger.Error("failed to journal game", "session", o.SessionID, "error", jerr)
		if err == nil {
			err = fmt.Errorf("%w: %w", ErrPersistenceUnavailable, jerr)
		}
	}
	return rec, err
}
