package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderOpenAI     = "openai"
	ProviderGroq       = "groq"
	ProviderOpenRouter = "openrouter"
	ProviderCompatible = "compatible"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

// Config holds all provider configuration.
type Config struct {
	// Provider selects which text-generation service to use.
	// Values: "openai", "groq", "openrouter", "compatible", "anthropic",
	// "gemini", "mock"
	Provider string

	OpenAI     OpenAIConfig
	Groq       CompatibleConfig
	OpenRouter CompatibleConfig
	Compatible CompatibleConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	Mock       MockConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single service call
	// (including retries). Default: 60s.
	Timeout time.Duration
}

// MockConfig shapes the canned replies of the offline provider.
type MockConfig struct {
	Questions int // Questions per canned draft. Default: 3
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional.
}

// CompatibleConfig configures an OpenAI-compatible endpoint. Groq and
// OpenRouter ship with preset base URLs and models; "compatible" requires
// BaseURL.
type CompatibleConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderOpenAI,
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Mock: MockConfig{
			Questions: 3,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// DiscoverConfig checks standard API key env vars in priority order
// (OpenAI → Groq → Gemini → Anthropic → OpenRouter) and returns a Config for
// the first provider whose key is found. Returns (Config{}, false) if none
// found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GROQ_API_KEY"); k != "" {
		cfg.Provider = ProviderGroq
		cfg.Groq.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// SetCredentials applies an API key, model and base URL to the section of
// the currently selected provider. Empty values leave the section untouched.
func (c *Config) SetCredentials(apiKey, model, baseURL string) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	switch c.Provider {
	case ProviderOpenAI:
		set(&c.OpenAI.APIKey, apiKey)
		set(&c.OpenAI.Model, model)
		set(&c.OpenAI.BaseURL, baseURL)
	case ProviderGroq:
		set(&c.Groq.APIKey, apiKey)
		set(&c.Groq.Model, model)
		set(&c.Groq.BaseURL, baseURL)
	case ProviderOpenRouter:
		set(&c.OpenRouter.APIKey, apiKey)
		set(&c.OpenRouter.Model, model)
		set(&c.OpenRouter.BaseURL, baseURL)
	case ProviderCompatible:
		set(&c.Compatible.APIKey, apiKey)
		set(&c.Compatible.Model, model)
		set(&c.Compatible.BaseURL, baseURL)
	case ProviderAnthropic:
		set(&c.Anthropic.APIKey, apiKey)
		set(&c.Anthropic.Model, model)
	case ProviderGemini:
		set(&c.Gemini.APIKey, apiKey)
		set(&c.Gemini.Model, model)
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("an API key is required for the openai provider (set EDUGEN_LLM_API_KEY or OPENAI_API_KEY)")
		}
	case ProviderGroq:
		if c.Groq.APIKey == "" {
			return fmt.Errorf("an API key is required for the groq provider (set EDUGEN_LLM_API_KEY or GROQ_API_KEY)")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("an API key is required for the openrouter provider (set EDUGEN_LLM_API_KEY or OPENROUTER_API_KEY)")
		}
	case ProviderCompatible:
		if c.Compatible.BaseURL == "" {
			return fmt.Errorf("a base URL is required for the compatible provider (set EDUGEN_LLM_BASE_URL)")
		}
		if c.Compatible.Model == "" {
			return fmt.Errorf("a model is required for the compatible provider (set EDUGEN_LLM_MODEL)")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("an API key is required for the anthropic provider (set EDUGEN_LLM_API_KEY or ANTHROPIC_API_KEY)")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("an API key is required for the gemini provider (set EDUGEN_LLM_API_KEY or GEMINI_API_KEY)")
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown provider: %q", c.Provider)
	}
	return nil
}
