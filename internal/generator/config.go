package generator

import (
	"log/slog"

	"github.com/abhisek/edugen/internal/content"
)

// Config controls the behavior of the Generator.
type Config struct {
	// Validators is the ordered list of validators run on every parsed
	// draft. The first failure makes the draft degenerate.
	Validators []content.Validator

	// QuestionCount is the number of MCQs requested per draft.
	QuestionCount int

	// MaxTokens is the token budget for the service response.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	Logger *slog.Logger
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	const questions = 3
	return Config{
		Validators:    content.DefaultValidators(questions),
		QuestionCount: questions,
		MaxTokens:     2048,
		Temperature:   0.7,
	}
}
