package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/edugen/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
// repo may be nil, in which case calls are only logged.
func NewProvider(ctx context.Context, cfg Config, logger *slog.Logger, repo store.UsageRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGroq:
		base, err = NewCompatibleProvider(ProviderGroq, cfg.Groq)
	case ProviderOpenRouter:
		base, err = NewCompatibleProvider(ProviderOpenRouter, cfg.OpenRouter)
	case ProviderCompatible:
		base, err = NewCompatibleProvider(ProviderCompatible, cfg.Compatible)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewOfflineProvider(cfg.Mock)
	default:
		return nil, fmt.Errorf("unknown provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, logger, repo)
	return WithRetry(logged, cfg.Retry), nil
}
