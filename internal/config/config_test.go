package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-sweeper/internal/games/minesweeper"
	"github.com/vovakirdan/tui-sweeper/internal/stats"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := decode("sweeper.yaml", defaultSweeperYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults differ from Default():\n%+v\n%+v", cfg, Default())
	}
}

func TestLoadCustomYAML(t *testing.T) {
	path := writeFile(t, "custom.yaml", `
board:
  difficulty: hard
stats:
  backend: yaml
  path: /tmp/stats.yaml
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.Difficulty != "hard" {
		t.Errorf("Expected hard, got %q", cfg.Board.Difficulty)
	}
	if cfg.Stats.Backend != BackendYAML || cfg.StatsPath() != "/tmp/stats.yaml" {
		t.Errorf("Unexpected stats config: %+v", cfg.Stats)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected debug level, got %q", cfg.Log.Level)
	}
	// Omitted keys keep their defaults.
	if cfg.UI.TickRate != 10 {
		t.Errorf("Expected default tick rate 10, got %d", cfg.UI.TickRate)
	}
	if cfg.Log.File != Default().Log.File {
		t.Errorf("Expected default log file, got %q", cfg.Log.File)
	}
}

func TestLoadCustomTOML(t *testing.T) {
	path := writeFile(t, "custom.toml", `
[board]
difficulty = "custom"
size = 12
mines = 20

[stats]
backend = "memory"

[ui]
tick_rate = 30
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	want := BoardConfig{Difficulty: "custom", Size: 12, Mines: 20}
	if cfg.Board != want {
		t.Errorf("Expected board %+v, got %+v", want, cfg.Board)
	}
	if cfg.Stats.Backend != BackendMemory {
		t.Errorf("Expected memory backend, got %q", cfg.Stats.Backend)
	}
	if cfg.UI.TickRate != 30 {
		t.Errorf("Expected tick rate 30, got %d", cfg.UI.TickRate)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	tests := map[string]string{
		"missing":     filepath.Join(t.TempDir(), "nope.yaml"),
		"bad yaml":    writeFile(t, "bad.yaml", "board: [unterminated"),
		"bad toml":    writeFile(t, "bad.toml", "[board\ndifficulty ="),
		"bad backend": writeFile(t, "backend.yaml", "stats:\n  backend: postgres\n"),
		"bad level":   writeFile(t, "level.yaml", "log:\n  level: loud\n"),
		"bad tick":    writeFile(t, "tick.yaml", "ui:\n  tick_rate: 0\n"),
	}
	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(path); err == nil {
				t.Errorf("Expected error for %s", path)
			}
		})
	}
}

func TestStatsPathDefaults(t *testing.T) {
	cfg := Default()
	if got := cfg.StatsPath(); got != filepath.Join("~", ".sweeper", "sweeper.db") {
		t.Errorf("Unexpected sqlite default path %q", got)
	}
	cfg.Stats.Backend = BackendYAML
	if got := cfg.StatsPath(); got != filepath.Join("~", ".sweeper", "stats.yaml") {
		t.Errorf("Unexpected yaml default path %q", got)
	}
}

func TestResolveBoard(t *testing.T) {
	tests := []struct {
		name        string
		difficulty  string
		size, mines int
		wantD       stats.Difficulty
		wantP       stats.Preset
	}{
		{"easy", "easy", 0, 0, stats.Easy, stats.Preset{Size: 9, Mines: 10}},
		{"medium ignores size", "medium", 5, 5, stats.Medium, stats.Preset{Size: 16, Mines: 40}},
		{"hard upper case", "HARD", 0, 0, stats.Hard, stats.Preset{Size: 22, Mines: 99}},
		{"empty defaults to easy", "", 0, 0, stats.Easy, stats.Preset{Size: 9, Mines: 10}},
		{"empty with size is custom", "", 12, 20, stats.Custom, stats.Preset{Size: 12, Mines: 20}},
		{"custom", "custom", 30, 150, stats.Custom, stats.Preset{Size: 30, Mines: 150}},
		{"custom matching a preset", "custom", 16, 40, stats.Medium, stats.Preset{Size: 16, Mines: 40}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, p, err := ResolveBoard(tc.difficulty, tc.size, tc.mines)
			if err != nil {
				t.Fatalf("ResolveBoard() failed: %v", err)
			}
			if d != tc.wantD || p != tc.wantP {
				t.Errorf("Got %s %+v, want %s %+v", d, p, tc.wantD, tc.wantP)
			}
		})
	}
}

func TestResolveBoardInvalid(t *testing.T) {
	tests := []struct {
		difficulty  string
		size, mines int
	}{
		{"expert", 0, 0},
		{"custom", 0, 0},
		{"custom", 3, 50},
		{"custom", 5, -1},
		{"custom", 100000, 1},
	}
	for _, tc := range tests {
		_, _, err := ResolveBoard(tc.difficulty, tc.size, tc.mines)
		if !errors.Is(err, minesweeper.ErrInvalidConfig) {
			t.Errorf("ResolveBoard(%q, %d, %d): expected ErrInvalidConfig, got %v", tc.difficulty, tc.size, tc.mines, err)
		}
	}
}
