// Package config loads edugen settings from defaults, an optional
// edugen.yaml, EDUGEN_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	LLM        LLMConfig        `mapstructure:"llm" validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	Review     ReviewConfig     `mapstructure:"review" validate:"required"`
	Loop       LoopConfig       `mapstructure:"loop"`
	Log        LogConfig        `mapstructure:"log" validate:"required"`
	Usage      UsageConfig      `mapstructure:"usage"`
}

// LLMConfig selects and configures the text-generation service.
type LLMConfig struct {
	// Provider is empty to auto-detect from vendor API key variables.
	Provider    string        `mapstructure:"provider" validate:"omitempty,oneof=openai groq openrouter compatible anthropic gemini mock"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxAttempts int           `mapstructure:"max_attempts" validate:"gte=1,lte=10"`
}

// GenerationConfig tunes draft generation.
type GenerationConfig struct {
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"gt=0"`
	Questions   int     `mapstructure:"questions" validate:"gte=1,lte=10"`
}

// ReviewConfig tunes draft review.
type ReviewConfig struct {
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"gt=0"`
}

// LoopConfig bounds the refinement loop.
type LoopConfig struct {
	MaxRefinements int `mapstructure:"max_refinements" validate:"gte=0,lte=20"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// UsageConfig controls the local ledger of service calls.
type UsageConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// DB is the SQLite file path; empty means the default location.
	DB string `mapstructure:"db"`
}
