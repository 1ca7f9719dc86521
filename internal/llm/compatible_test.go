package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestNewCompatibleProvider(t *testing.T) {
	tests := []struct {
		name      string
		provider  string
		cfg       CompatibleConfig
		wantModel string
		wantErr   bool
	}{
		{
			name:      "groq preset",
			provider:  ProviderGroq,
			cfg:       CompatibleConfig{APIKey: "gsk-test"},
			wantModel: "llama-3.3-70b-versatile",
		},
		{
			name:      "openrouter preset with model override",
			provider:  ProviderOpenRouter,
			cfg:       CompatibleConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"},
			wantModel: "anthropic/claude-3-haiku",
		},
		{
			name:     "preset without key",
			provider: ProviderGroq,
			wantErr:  true,
		},
		{
			name:      "self-hosted without key",
			provider:  ProviderCompatible,
			cfg:       CompatibleConfig{BaseURL: "http://localhost:11434/v1", Model: "llama3.1"},
			wantModel: "llama3.1",
		},
		{
			name:     "self-hosted without base URL",
			provider: ProviderCompatible,
			cfg:      CompatibleConfig{Model: "llama3.1"},
			wantErr:  true,
		},
		{
			name:     "self-hosted without model",
			provider: ProviderCompatible,
			cfg:      CompatibleConfig{BaseURL: "http://localhost:11434/v1"},
			wantErr:  true,
		},
		{
			name:     "unknown name",
			provider: "together",
			cfg:      CompatibleConfig{APIKey: "k"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewCompatibleProvider(tt.provider, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCompatibleProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if p.ModelID() != tt.wantModel {
				t.Errorf("model = %q, want %q", p.ModelID(), tt.wantModel)
			}
			if p.jsonSchema {
				t.Error("compatible endpoints should not use json_schema")
			}
		})
	}
}

func TestCompatibleProvider_SendsJSONObjectFormat(t *testing.T) {
	var got openai.ChatCompletionRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)
		chatCompletion(w, draftJSON, "stop")
	}))
	t.Cleanup(server.Close)

	p, err := NewCompatibleProvider(ProviderCompatible, CompatibleConfig{
		BaseURL: server.URL + "/v1",
		Model:   "local-model",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		Schema:    draftTestSchema(false),
		MaxTokens: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Model != "local-model" {
		t.Errorf("model = %q, want local-model", got.Model)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
		t.Errorf("expected json_object response format, got %+v", got.ResponseFormat)
	}
	if auth != "Bearer unused" {
		t.Errorf("authorization = %q, want placeholder token", auth)
	}
}
