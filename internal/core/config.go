package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses it to lay out the board and to seed mine placement.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // UI refresh ticks per second (timer display only)
	Seed     int64 // RNG seed for reproducible boards
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 10,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Elapsed  int  // Seconds since the first reveal
	Started  bool // Whether the first reveal happened
	GameOver bool // Won or lost
	Won      bool
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
	// Changed reports whether the board changed during this step.
	Changed bool
}
