package tools

// Config centralizes tool tuning knobs.
// Replaces magic numbers scattered throughout tool implementations.
type Config struct {
	// Menu recommendation configuration
	MenuResultLimit int // number of nearest menu items to retrieve
	MealsPerDay     int // divisor turning a daily budget into a per-meal ceiling
}

// DefaultConfig returns the default tool configuration.
func DefaultConfig() *Config {
	return &Config{
		MenuResultLimit: 3,
		MealsPerDay:     3,
	}
}
