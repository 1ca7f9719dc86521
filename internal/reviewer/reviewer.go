package reviewer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abhisek/edugen/internal/content"
	"github.com/abhisek/edugen/internal/llm"
)

// ErrorPrefix starts the single feedback item of a verdict produced when the
// review itself could not be carried out.
const ErrorPrefix = "Error during review"

// Reviewer judges drafts through the text-generation service.
type Reviewer struct {
	client *llm.Client
	config Config
	logger *slog.Logger
}

// New creates a Reviewer with the given client and config.
func New(client *llm.Client, cfg Config) *Reviewer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reviewer{client: client, config: cfg, logger: logger.With("component", "reviewer")}
}

// Review returns a verdict for the draft. It never returns an error: a
// failed review call yields a failing verdict naming the cause.
func (r *Reviewer) Review(ctx context.Context, d content.Draft, req content.Request) content.Verdict {
	v, err := r.review(ctx, d, req)
	if err != nil {
		r.logger.WarnContext(ctx, "review failed", "request", req.String(), "error", err)
		return content.Fail(fmt.Sprintf("%s: %s", ErrorPrefix, err))
	}
	return v
}

func (r *Reviewer) review(ctx context.Context, d content.Draft, req content.Request) (content.Verdict, error) {
	user, err := buildReviewMessage(d, req)
	if err != nil {
		return content.Verdict{}, err
	}

	raw, serr := r.client.Call(ctx, llm.Call{
		Purpose:     "review",
		System:      systemPrompt,
		User:        user,
		Temperature: r.config.Temperature,
		MaxTokens:   r.config.MaxTokens,
		Schema:      VerdictSchema,
	})
	if serr != nil {
		return content.Verdict{}, serr
	}

	var out reviewOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return content.Verdict{}, fmt.Errorf("parse verdict: %w", err)
	}

	v, remarks, err := normalize(out)
	if err != nil {
		return content.Verdict{}, err
	}
	if len(remarks) > 0 {
		r.logger.DebugContext(ctx, "dropping remarks from passing review", "remarks", remarks)
	}
	return v, nil
}
