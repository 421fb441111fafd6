package core

// RuntimeConfig contains configuration passed to a game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Animation ticks per second
	Seed     int64 // RNG seed for reproducible boards
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is what a game reports to the platform after each step.
type GameState struct {
	Score    int  // Deepest level reached
	Turn     int  // Turns survived
	GameOver bool // The run has ended
	Paused   bool // A menu is open
	Exit     bool // The game asked the platform to close
}

// StepResult is returned by a game's Step after each tick.
type StepResult struct {
	State GameState
}
