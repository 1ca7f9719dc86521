package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abhisek/edugen/internal/content"
	"github.com/abhisek/edugen/internal/llm"
)

// Prefixes of the explanation carried by a degenerate draft.
const (
	GenerateErrorPrefix = "Error generating content"
	RefineErrorPrefix   = "Error refining content"
)

// Generator produces content drafts through the text-generation service.
// Generate and Refine never return errors: every failure becomes a
// degenerate draft whose explanation names the cause.
type Generator struct {
	client *llm.Client
	config Config
	logger *slog.Logger
}

// New creates a Generator with the given client and config.
func New(client *llm.Client, cfg Config) *Generator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = DefaultConfig().QuestionCount
	}
	if cfg.Validators == nil {
		cfg.Validators = content.DefaultValidators(cfg.QuestionCount)
	}
	return &Generator{client: client, config: cfg, logger: logger.With("component", "generator")}
}

// draftOutput is the raw service response before normalization.
type draftOutput struct {
	Explanation string `json:"explanation"`
	MCQs        []struct {
		Question string   `json:"question"`
		Options  []string `json:"options"`
		Answer   string   `json:"answer"`
	} `json:"mcqs"`
}

// Generate produces a first draft for the request.
func (g *Generator) Generate(ctx context.Context, req content.Request) content.Draft {
	user := buildGenerateMessage(req, g.config.QuestionCount)
	d, err := g.draft(ctx, "generate", user)
	if err != nil {
		g.logger.WarnContext(ctx, "generation failed", "request", req.String(), "error", err)
		return content.DegenerateDraft(GenerateErrorPrefix, err.Error())
	}
	return d
}

// Refine produces a new draft addressing the reviewer's feedback.
func (g *Generator) Refine(ctx context.Context, req content.Request, feedback []string) content.Draft {
	user := buildRefineMessage(req, feedback, g.config.QuestionCount)
	d, err := g.draft(ctx, "refine", user)
	if err != nil {
		g.logger.WarnContext(ctx, "refinement failed", "request", req.String(), "error", err)
		return content.DegenerateDraft(RefineErrorPrefix, err.Error())
	}
	return d
}

func (g *Generator) draft(ctx context.Context, purpose, user string) (content.Draft, error) {
	raw, serr := g.client.Call(ctx, llm.Call{
		Purpose:     purpose,
		System:      systemPrompt,
		User:        user,
		Temperature: g.config.Temperature,
		MaxTokens:   g.config.MaxTokens,
		Schema:      DraftSchema,
	})
	if serr != nil {
		return content.Draft{}, serr
	}

	var out draftOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return content.Draft{}, fmt.Errorf("parse draft: %w", err)
	}

	d := content.Draft{Explanation: out.Explanation, MCQs: make([]content.MCQ, len(out.MCQs))}
	for i, q := range out.MCQs {
		d.MCQs[i] = content.MCQ{Question: q.Question, Options: q.Options, Answer: q.Answer}
	}
	d = content.Normalize(d)

	if verr := content.Validate(&d, g.config.Validators); verr != nil {
		return content.Draft{}, verr
	}

	g.logger.DebugContext(ctx, "draft ready", "purpose", purpose, "questions", len(d.MCQs))
	return d, nil
}
