package config

import (
	"os"

	"github.com/abhisek/edugen/internal/llm"
)

// vendorKeyEnv names the conventional API key variable of each provider.
var vendorKeyEnv = map[string]string{
	llm.ProviderOpenAI:     "OPENAI_API_KEY",
	llm.ProviderGroq:       "GROQ_API_KEY",
	llm.ProviderOpenRouter: "OPENROUTER_API_KEY",
	llm.ProviderAnthropic:  "ANTHROPIC_API_KEY",
	llm.ProviderGemini:     "GEMINI_API_KEY",
}

// ProviderConfig maps the llm section onto an llm.Config and validates it.
//
// With no provider set, an explicit API key selects OpenAI; without one the
// vendor variables are checked in llm.DiscoverConfig order. With a provider
// set, an empty API key falls back to that vendor's variable.
func (c *Config) ProviderConfig() (llm.Config, error) {
	cfg := llm.DefaultConfig()

	switch {
	case c.LLM.Provider != "":
		cfg.Provider = c.LLM.Provider
	case c.LLM.APIKey != "":
		cfg.Provider = llm.ProviderOpenAI
	default:
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		}
	}

	apiKey := c.LLM.APIKey
	if apiKey == "" {
		if env, ok := vendorKeyEnv[cfg.Provider]; ok {
			apiKey = os.Getenv(env)
		}
	}
	cfg.SetCredentials(apiKey, c.LLM.Model, c.LLM.BaseURL)

	cfg.Timeout = c.LLM.Timeout
	cfg.Retry.MaxAttempts = c.LLM.MaxAttempts
	cfg.Mock.Questions = c.Generation.Questions

	if err := cfg.Validate(); err != nil {
		return llm.Config{}, err
	}
	return cfg, nil
}
