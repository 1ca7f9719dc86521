package reviewer

import "log/slog"

// Config controls the behavior of the Reviewer.
type Config struct {
	// MaxTokens is the token budget for the service response.
	MaxTokens int

	// Temperature controls output randomness. Reviews run cooler than
	// generation.
	Temperature float64

	Logger *slog.Logger
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.3,
	}
}
