package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/edugen/internal/store"
)

// LoggingProvider is a decorator that logs every service call and, when a
// ledger is configured, records its metadata there.
type LoggingProvider struct {
	inner    Provider
	provider string
	logger   *slog.Logger
	repo     store.UsageRepo
}

// WithLogging wraps a Provider with call logging. repo may be nil.
func WithLogging(p Provider, provider string, logger *slog.Logger, repo store.UsageRepo) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, provider: provider, logger: logger, repo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		RunID:     RunIDFrom(ctx),
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}

	attrs := []any{
		"provider", data.Provider,
		"model", data.Model,
		"purpose", data.Purpose,
		"latency_ms", data.LatencyMs,
		"input_tokens", data.InputTokens,
		"output_tokens", data.OutputTokens,
	}
	if data.RunID != "" {
		attrs = append(attrs, "run_id", data.RunID)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.WarnContext(ctx, "llm request failed", append(attrs, "error", err)...)
	} else {
		l.logger.DebugContext(ctx, "llm request", attrs...)
	}

	// A ledger failure never fails the request.
	if l.repo != nil {
		if logErr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.logger.Warn("failed to record LLM request", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
