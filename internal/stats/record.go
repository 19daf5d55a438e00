package stats

import "fmt"

// Record is the aggregate for one difficulty.
type Record struct {
	GamesPlayed     int  `yaml:"games"`
	Wins            int  `yaml:"wins"`
	BestTimeSeconds *int `yaml:"best_time"`
}

// Apply folds one finished game into the record.
func (r Record) Apply(won bool, elapsedSeconds int) Record {
	r.GamesPlayed++
	if !won {
		return r
	}
	r.Wins++
	if r.BestTimeSeconds == nil || elapsedSeconds < *r.BestTimeSeconds {
		best := elapsedSeconds
		r.BestTimeSeconds = &best
	}
	return r
}

// WinRate returns wins/games in percent, 0 with no games.
func (r Record) WinRate() float64 {
	if r.GamesPlayed == 0 {
		return 0
	}
	return float64(r.Wins) * 100 / float64(r.GamesPlayed)
}

// BestTime formats the best time, or "-" when there is none.
func (r Record) BestTime() string {
	if r.BestTimeSeconds == nil {
		return "-"
	}
	return fmt.Sprintf("%ds", *r.BestTimeSeconds)
}

func (r Record) validate() error {
	if r.GamesPlayed < 0 || r.Wins < 0 || r.Wins > r.GamesPlayed {
		return fmt.Errorf("games=%d wins=%d out of range", r.GamesPlayed, r.Wins)
	}
	if r.BestTimeSeconds != nil && *r.BestTimeSeconds < 0 {
		return fmt.Errorf("best_time=%d is negative", *r.BestTimeSeconds)
	}
	return nil
}

// Table maps every difficulty to its record.
type Table map[Difficulty]Record

// DefaultTable returns zeroed records for all four difficulties.
func DefaultTable() Table {
	t := make(Table, 4)
	for _, d := range All() {
		t[d] = Record{}
	}
	return t
}

// Clone returns a deep copy.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for d, r := range t {
		if r.BestTimeSeconds != nil {
			best := *r.BestTimeSeconds
			r.BestTimeSeconds = &best
		}
		out[d] = r
	}
	return out
}

// normalize fills missing buckets and rejects unknown or inconsistent ones.
func (t Table) normalize() (Table, error) {
	out := DefaultTable()
	for d, r := range t {
		if _, ok := presets[d]; !ok && d != Custom {
			return nil, fmt.Errorf("stats: unknown difficulty %q", d)
		}
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("stats: %s: %w", d, err)
		}
		out[d] = r
	}
	return out, nil
}
