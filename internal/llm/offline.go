package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NewOfflineProvider returns a MockProvider that never runs out of replies:
// every review request gets a passing verdict and every other request gets
// a well-formed sample draft. It backs the "mock" provider so the whole
// pipeline can run without network access.
func NewOfflineProvider(cfg MockConfig) *MockProvider {
	questions := cfg.Questions
	if questions <= 0 {
		questions = DefaultConfig().Mock.Questions
	}
	m := NewMockProvider()
	m.Responder = func(req Request) MockResponse {
		if wantsVerdict(req.Schema) {
			return MockResponse{Content: json.RawMessage(`{"status":"pass","feedback":[]}`)}
		}
		return MockResponse{Content: sampleDraft(topicOf(req), questions)}
	}
	return m
}

// wantsVerdict reports whether the schema asks for a review decision.
func wantsVerdict(s *Schema) bool {
	if s == nil {
		return false
	}
	props, _ := s.Definition["properties"].(map[string]any)
	_, ok := props["status"]
	return ok
}

// topicOf pulls the "Topic:" line out of the last user message.
func topicOf(req Request) string {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role != RoleUser {
			continue
		}
		for _, line := range strings.Split(req.Messages[i].Content, "\n") {
			if t, ok := strings.CutPrefix(strings.TrimSpace(line), "Topic:"); ok && strings.TrimSpace(t) != "" {
				return strings.TrimSpace(t)
			}
		}
		break
	}
	return "the topic"
}

func sampleDraft(topic string, questions int) json.RawMessage {
	type mcq struct {
		Question string   `json:"question"`
		Options  []string `json:"options"`
		Answer   string   `json:"answer"`
	}
	out := struct {
		Explanation string `json:"explanation"`
		MCQs        []mcq  `json:"mcqs"`
	}{
		Explanation: fmt.Sprintf("This is offline sample content about %s. It was produced without contacting a text-generation service.", topic),
		MCQs:        make([]mcq, questions),
	}
	for i := range out.MCQs {
		out.MCQs[i] = mcq{
			Question: fmt.Sprintf("Sample question %d about %s?", i+1, topic),
			Options:  []string{"A) First choice", "B) Second choice", "C) Third choice", "D) Fourth choice"},
			Answer:   "A",
		}
	}
	raw, _ := json.Marshal(out)
	return raw
}
