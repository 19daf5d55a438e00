// Package storage provides SQLite persistence for minesweeper statistics.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-sweeper/internal/stats"
)

// Store is a stats.Backend and stats.Journal backed by SQLite.
type Store struct {
	db *sql.DB
}

// GameEntry is one journaled game.
type GameEntry struct {
	ID int64
	stats.GameRecord
}

var (
	_ stats.Backend = (*Store)(nil)
	_ stats.Journal = (*Store)(nil)
)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS difficulty_stats (
			difficulty TEXT PRIMARY KEY,
			games INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0,
			best_time INTEGER
		);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			size INTEGER NOT NULL,
			mines INTEGER NOT NULL,
			won INTEGER NOT NULL,
			elapsed_secs INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_games_best ON games(difficulty, won, elapsed_secs);
		CREATE INDEX IF NOT EXISTS idx_games_created ON games(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReadAll returns the aggregate table. Buckets without a row are zeroed.
func (s *Store) ReadAll() (stats.Table, error) {
	rows, err := s.db.Query(`SELECT difficulty, games, wins, best_time FROM difficulty_stats`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	table := stats.DefaultTable()
	for rows.Next() {
		var (
			d    string
			rec  stats.Record
			best sql.NullInt64
		)
		if err := rows.Scan(&d, &rec.GamesPlayed, &rec.Wins, &best); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if best.Valid {
			v := int(best.Int64)
			rec.BestTimeSeconds = &v
		}
		table[stats.Difficulty(d)] = rec
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return table, nil
}

// WriteAll upserts every record in one transaction.
func (s *Store) WriteAll(table stats.Table) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for d, rec := range table {
		var best sql.NullInt64
		if rec.BestTimeSeconds != nil {
			best = sql.NullInt64{Int64: int64(*rec.BestTimeSeconds), Valid: true}
		}
		_, err = tx.Exec(
			`INSERT INTO difficulty_stats (difficulty, games, wins, best_time)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(difficulty) DO UPDATE SET
			     games = excluded.games,
			     wins = excluded.wins,
			     best_time = excluded.best_time`,
			string(d), rec.GamesPlayed, rec.Wins, best,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save %s stats: %w", d, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit stats: %w", err)
	}
	return nil
}

// AppendGame journals one finished game.
func (s *Store) AppendGame(g stats.GameRecord) error {
	playedAt := g.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO games (session_id, difficulty, size, mines, won, elapsed_secs, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.SessionID,
		string(g.Difficulty),
		g.Size,
		g.Mines,
		g.Won,
		g.ElapsedSeconds,
		playedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// BestTimes returns the fastest wins for a difficulty, fastest first.
func (s *Store) BestTimes(d stats.Difficulty, limit int) ([]GameEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryGames(
		`SELECT id, session_id, difficulty, size, mines, won, elapsed_secs, created_at
		 FROM games
		 WHERE difficulty = ? AND won = 1
		 ORDER BY elapsed_secs ASC, created_at ASC
		 LIMIT ?`,
		string(d), limit,
	)
}

// RecentGames returns the latest games across all difficulties.
func (s *Store) RecentGames(limit int) ([]GameEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryGames(
		`SELECT id, session_id, difficulty, size, mines, won, elapsed_secs, created_at
		 FROM games
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryGames(query string, args ...any) ([]GameEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var entries []GameEntry
	for rows.Next() {
		var (
			e         GameEntry
			d         string
			createdAt any
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &d, &e.Size, &e.Mines, &e.Won, &e.ElapsedSeconds, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Difficulty = stats.Difficulty(d)
		e.PlayedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// ClearStats deletes all aggregates and the game journal.
func (s *Store) ClearStats() (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DELETE FROM difficulty_stats"); err != nil {
		return fmt.Errorf("storage: cannot clear stats: %w", err)
	}
	if _, err = tx.Exec("DELETE FROM games"); err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return tx.Commit()
}

// parseTime handles both driver-decoded times and stored text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

