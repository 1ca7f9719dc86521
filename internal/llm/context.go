package llm

import "context"

type contextKey string

const (
	purposeKey contextKey = "llm_purpose"
	runIDKey   contextKey = "llm_run_id"
)

// WithPurpose attaches a purpose label to the context for call logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithRunID attaches the orchestration run ID so every call can be
// correlated with the run that issued it.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFrom extracts the run ID from the context, or "" if unset.
func RunIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(runIDKey).(string)
	return v
}
