// Package config provides YAML/TOML configuration loading for the sweeper
// CLI, with embedded defaults.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Stats backends.
const (
	BackendSQLite = "sqlite"
	BackendYAML   = "yaml"
	BackendMemory = "memory"
)

// Config is the full sweeper configuration.
type Config struct {
	Board BoardConfig `yaml:"board" toml:"board"`
	Stats StatsConfig `yaml:"stats" toml:"stats"`
	Log   LogConfig   `yaml:"log" toml:"log"`
	UI    UIConfig    `yaml:"ui" toml:"ui"`
}

// BoardConfig selects the board used when none is given on the command line.
type BoardConfig struct {
	Difficulty string `yaml:"difficulty" toml:"difficulty"` // easy, medium, hard or custom
	Size       int    `yaml:"size" toml:"size"`             // custom only
	Mines      int    `yaml:"mines" toml:"mines"`           // custom only
}

// StatsConfig selects where statistics are kept.
type StatsConfig struct {
	Backend string `yaml:"backend" toml:"backend"`
	Path    string `yaml:"path" toml:"path"` // empty = per-backend default
}

// LogConfig controls the charm logger.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"` // used while the TUI owns the terminal
}

// UIConfig holds presentation settings.
type UIConfig struct {
	TickRate int `yaml:"tick_rate" toml:"tick_rate"` // frames per second
}

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{Difficulty: "easy"},
		Stats: StatsConfig{Backend: BackendSQLite},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join("~", ".sweeper", "sweeper.log"),
		},
		UI: UIConfig{TickRate: 10},
	}
}

// StatsPath returns the configured stats location or the backend default.
func (c Config) StatsPath() string {
	if c.Stats.Path != "" {
		return c.Stats.Path
	}
	switch c.Stats.Backend {
	case BackendYAML:
		return filepath.Join("~", ".sweeper", "stats.yaml")
	default:
		return filepath.Join("~", ".sweeper", "sweeper.db")
	}
}

// Validate checks values that cannot be repaired by defaults.
func (c Config) Validate() error {
	switch c.Stats.Backend {
	case BackendSQLite, BackendYAML, BackendMemory:
	default:
		return fmt.Errorf("config: unknown stats backend %q (want sqlite, yaml or memory)", c.Stats.Backend)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}
	if c.UI.TickRate < 1 || c.UI.TickRate > 60 {
		return fmt.Errorf("config: tick_rate %d out of range 1-60", c.UI.TickRate)
	}
	return nil
}
