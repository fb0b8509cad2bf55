package core

// RuntimeConfig carries the view's start-up parameters.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for layouts, 0 = time-based
	Level   int   // initial picker index, -1 = configured default
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0,
		Level:   -1,
	}
}
