package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper"
	"github.com/vovakirdan/tui-sweeper/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReadAllEmpty(t *testing.T) {
	store := openTestStore(t)

	table, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(table) != 4 {
		t.Fatalf("Expected 4 buckets, got %d", len(table))
	}
	for d, rec := range table {
		if rec != (stats.Record{}) {
			t.Errorf("Expected zero record for %s, got %+v", d, rec)
		}
	}
}

func TestStoreWriteAndReadAll(t *testing.T) {
	store := openTestStore(t)

	best := 42
	table := stats.DefaultTable()
	table[stats.Easy] = stats.Record{GamesPlayed: 3, Wins: 2, BestTimeSeconds: &best}
	table[stats.Hard] = stats.Record{GamesPlayed: 1}

	if err := store.WriteAll(table); err != nil {
		t.Fatalf("WriteAll() failed: %v", err)
	}

	// Overwrite once more to exercise the upsert.
	best = 40
	table[stats.Easy] = stats.Record{GamesPlayed: 4, Wins: 3, BestTimeSeconds: &best}
	if err := store.WriteAll(table); err != nil {
		t.Fatalf("WriteAll() failed: %v", err)
	}

	got, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}

	easy := got[stats.Easy]
	if easy.GamesPlayed != 4 || easy.Wins != 3 {
		t.Errorf("Unexpected easy record: %+v", easy)
	}
	if easy.BestTimeSeconds == nil || *easy.BestTimeSeconds != 40 {
		t.Errorf("Expected best time 40, got %v", easy.BestTimeSeconds)
	}
	if got[stats.Hard].BestTimeSeconds != nil {
		t.Errorf("Expected no best time for hard, got %d", *got[stats.Hard].BestTimeSeconds)
	}
	if got[stats.Hard].GamesPlayed != 1 {
		t.Errorf("Expected 1 hard game, got %d", got[stats.Hard].GamesPlayed)
	}
}

func TestStoreAsStatsBackend(t *testing.T) {
	store := openTestStore(t)
	s := stats.NewStore(store, log.New(io.Discard))

	outcomes := []minesweeper.Outcome{
		{SessionID: "a", Size: 9, Mines: 10, Won: true, ElapsedSeconds: 42},
		{SessionID: "b", Size: 9, Mines: 10, Won: true, ElapsedSeconds: 30},
		{SessionID: "c", Size: 9, Mines: 10, Won: false, ElapsedSeconds: 5},
		{SessionID: "d", Size: 12, Mines: 20, Won: true, ElapsedSeconds: 99},
	}
	for _, o := range outcomes {
		if _, err := s.RecordOutcome(o); err != nil {
			t.Fatalf("RecordOutcome(%s) failed: %v", o.SessionID, err)
		}
	}

	// A second store over the same database sees the persisted table.
	table := stats.NewStore(store, log.New(io.Discard)).Load()
	easy := table[stats.Easy]
	if easy.GamesPlayed != 3 || easy.Wins != 2 || easy.BestTimeSeconds == nil || *easy.BestTimeSeconds != 30 {
		t.Errorf("Unexpected easy record: %+v", easy)
	}
	if table[stats.Custom].Wins != 1 {
		t.Errorf("Expected 1 custom win, got %d", table[stats.Custom].Wins)
	}

	recent, err := store.RecentGames(10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(recent) != 4 {
		t.Errorf("Expected 4 journaled games, got %d", len(recent))
	}
}

func TestStoreBestTimes(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	games := []stats.GameRecord{
		{SessionID: "1", Difficulty: stats.Easy, Size: 9, Mines: 10, Won: true, ElapsedSeconds: 50},
		{SessionID: "2", Difficulty: stats.Easy, Size: 9, Mines: 10, Won: false, ElapsedSeconds: 3},
		{SessionID: "3", Difficulty: stats.Easy, Size: 9, Mines: 10, Won: true, ElapsedSeconds: 20},
		{SessionID: "4", Difficulty: stats.Hard, Size: 22, Mines: 99, Won: true, ElapsedSeconds: 10},
		{SessionID: "5", Difficulty: stats.Easy, Size: 9, Mines: 10, Won: true, ElapsedSeconds: 35},
	}
	for i, g := range games {
		g.PlayedAt = base.Add(time.Duration(i) * time.Minute)
		if err := store.AppendGame(g); err != nil {
			t.Fatalf("AppendGame() failed: %v", err)
		}
	}

	best, err := store.BestTimes(stats.Easy, 2)
	if err != nil {
		t.Fatalf("BestTimes() failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("Expected 2 entries with limit, got %d", len(best))
	}
	if best[0].ElapsedSeconds != 20 || best[1].ElapsedSeconds != 35 {
		t.Errorf("Best times not in expected order: %+v", best)
	}
	if best[0].SessionID != "3" || !best[0].Won {
		t.Errorf("Unexpected fastest entry: %+v", best[0])
	}
	if !best[0].PlayedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("Expected played_at %v, got %v", base.Add(2*time.Minute), best[0].PlayedAt)
	}
}

func TestStoreRecentGames(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		err := store.AppendGame(stats.GameRecord{
			SessionID:  string(rune('a' + i)),
			Difficulty: stats.Medium,
			Size:       16,
			Mines:      40,
			PlayedAt:   base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("AppendGame() failed: %v", err)
		}
	}

	recent, err := store.RecentGames(3)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 games with limit, got %d", len(recent))
	}
	if recent[0].SessionID != "e" || recent[2].SessionID != "c" {
		t.Errorf("Games not newest first: %s, %s, %s", recent[0].SessionID, recent[1].SessionID, recent[2].SessionID)
	}
	if recent[0].Difficulty != stats.Medium {
		t.Errorf("Expected medium, got %s", recent[0].Difficulty)
	}
}

func TestStoreClearStats(t *testing.T) {
	store := openTestStore(t)

	best := 12
	table := stats.DefaultTable()
	table[stats.Easy] = stats.Record{GamesPlayed: 1, Wins: 1, BestTimeSeconds: &best}
	if err := store.WriteAll(table); err != nil {
		t.Fatalf("WriteAll() failed: %v", err)
	}
	if err := store.AppendGame(stats.GameRecord{SessionID: "x", Difficulty: stats.Easy, Won: true, ElapsedSeconds: 12}); err != nil {
		t.Fatalf("AppendGame() failed: %v", err)
	}

	if err := store.ClearStats(); err != nil {
		t.Fatalf("ClearStats() failed: %v", err)
	}

	got, _ := store.ReadAll()
	if got[stats.Easy].GamesPlayed != 0 {
		t.Errorf("Expected cleared easy record, got %+v", got[stats.Easy])
	}
	recent, _ := store.RecentGames(10)
	if len(recent) != 0 {
		t.Errorf("Expected empty journal, got %d games", len(recent))
	}
}

func TestOpenFailsOnFilePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(filepath.Join(blocker, "test.db")); err == nil {
		t.Error("Expected error when the parent is a regular file")
	}
}
