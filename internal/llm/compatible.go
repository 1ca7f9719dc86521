package llm

import "fmt"

// compatPreset holds the defaults of a hosted OpenAI-compatible service.
type compatPreset struct {
	BaseURL string
	Model   string
}

var compatPresets = map[string]compatPreset{
	ProviderGroq: {
		BaseURL: "https://api.groq.com/openai/v1",
		Model:   "llama-3.3-70b-versatile",
	},
	ProviderOpenRouter: {
		BaseURL: "https://openrouter.ai/api/v1",
		Model:   "openai/gpt-4o-mini",
	},
}

// NewCompatibleProvider creates a provider for an OpenAI-compatible API.
// name selects a preset ("groq", "openrouter") or "compatible" for an
// arbitrary endpoint, in which case BaseURL and Model are required.
// The OpenAI SDK is reused, so these variants differ only in configuration.
func NewCompatibleProvider(name string, cfg CompatibleConfig) (*OpenAIProvider, error) {
	preset, known := compatPresets[name]
	if !known && name != ProviderCompatible {
		return nil, fmt.Errorf("unknown OpenAI-compatible provider: %q", name)
	}

	if known && cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", name)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = preset.BaseURL
	}
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required for %s provider", name)
	}

	model := cfg.Model
	if model == "" {
		model = preset.Model
	}
	if model == "" {
		return nil, fmt.Errorf("model is required for %s provider", name)
	}

	// Self-hosted servers often accept any token; the SDK still wants one.
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "unused"
	}

	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
	})
	if err != nil {
		return nil, err
	}
	p.jsonSchema = false
	return p, nil
}
