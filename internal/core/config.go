package core

// RuntimeConfig is what the platform knows when a table is opened.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	Seed       int64  // RNG seed for deterministic deals; 0 means time-based
	Variant    string // Registry ID of the variant to play
	Difficulty string // Empty keeps the stored difficulty
	Mode       string // Empty keeps the stored mode
}

// DefaultConfig returns a RuntimeConfig for a standard 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}
