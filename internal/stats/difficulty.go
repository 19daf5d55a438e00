// Package stats keeps per-difficulty aggregate statistics: games played,
// wins and best winning time. A Store reads and writes them through a
// pluggable Backend (YAML file, SQLite or memory).
package stats

import (
	"fmt"
	"strings"
)

// Difficulty is a statistics bucket.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Custom Difficulty = "custom"
)

// Preset is a canonical board shape.
type Preset struct {
	Size  int
	Mines int
}

var presets = map[Difficulty]Preset{
	Easy:   {Size: 9, Mines: 10},
	Medium: {Size: 16, Mines: 40},
	Hard:   {Size: 22, Mines: 99},
}

// All lists every bucket in display order.
func All() []Difficulty {
	return []Difficulty{Easy, Medium, Hard, Custom}
}

// Dimensions returns the canonical board for d. Custom has none.
func Dimensions(d Difficulty) (Preset, bool) {
	p, ok := presets[d]
	return p, ok
}

// Classify maps a board shape to its bucket. Only exact canonical pairs
// count as Easy, Medium or Hard.
func Classify(size, mines int) Difficulty {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		if p := presets[d]; p.Size == size && p.Mines == mines {
			return d
		}
	}
	return Custom
}

// Parse reads a difficulty name, case-insensitively.
func Parse(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Easy, Medium, Hard, Custom:
		return d, nil
	}
	return "", fmt.Errorf("stats: unknown difficulty %q (want easy, medium, hard or custom)", s)
}

// Label returns the capitalized name for display.
func (d Difficulty) Label() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}
