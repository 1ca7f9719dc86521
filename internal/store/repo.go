package store

import (
	"context"
	"time"
)

// QueryOpts configures ledger queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	RunID   string    // exact run ID match ("" = any)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single service call.
type LLMRequestEventData struct {
	RunID        string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestRecord is a stored service call.
type LLMRequestRecord struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// UsageStat aggregates calls grouped by purpose or model.
type UsageStat struct {
	Key          string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// UsageRepo provides append and query access to the usage ledger.
type UsageRepo interface {
	// AppendLLMRequest records a service call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMRequests returns recorded calls, newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)

	// UsageByPurpose aggregates calls per purpose (generate, refine, review).
	UsageByPurpose(ctx context.Context) ([]UsageStat, error)

	// UsageByModel aggregates calls per model, for cost estimates.
	UsageByModel(ctx context.Context) ([]UsageStat, error)
}
