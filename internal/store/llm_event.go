package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// usageRepo implements UsageRepo on top of database/sql.
type usageRepo struct {
	db *sql.DB
}

func (r *usageRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_requests
			(run_id, timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.RunID,
		time.Now().UTC().UnixMilli(),
		data.Provider,
		data.Model,
		data.Purpose,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		boolToInt(data.Success),
		data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *usageRepo) QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.Purpose != "" {
		where = append(where, "purpose = ?")
		args = append(args, opts.Purpose)
	}
	if opts.RunID != "" {
		where = append(where, "run_id = ?")
		args = append(args, opts.RunID)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, opts.From.UTC().UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, opts.To.UTC().UnixMilli())
	}

	q := `SELECT id, run_id, timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message
		FROM llm_requests`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestRecord
	for rows.Next() {
		var (
			rec     LLMRequestRecord
			ts      int64
			success int
		)
		if err := rows.Scan(
			&rec.ID, &rec.RunID, &ts, &rec.Provider, &rec.Model, &rec.Purpose,
			&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &success, &rec.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan LLM request: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts).UTC()
		rec.Success = success != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *usageRepo) UsageByPurpose(ctx context.Context) ([]UsageStat, error) {
	return r.usageBy(ctx, "purpose")
}

func (r *usageRepo) UsageByModel(ctx context.Context) ([]UsageStat, error) {
	return r.usageBy(ctx, "model")
}

// usageBy aggregates on a fixed column name; callers never pass user input.
func (r *usageRepo) usageBy(ctx context.Context, column string) ([]UsageStat, error) {
	q := fmt.Sprintf(`SELECT %[1]s,
			COUNT(*),
			SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END),
			SUM(input_tokens),
			SUM(output_tokens),
			CAST(AVG(latency_ms) AS INTEGER)
		FROM llm_requests
		GROUP BY %[1]s
		ORDER BY %[1]s`, column)

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query usage by %s: %w", column, err)
	}
	defer rows.Close()

	var out []UsageStat
	for rows.Next() {
		var st UsageStat
		if err := rows.Scan(&st.Key, &st.Calls, &st.Failures, &st.InputTokens, &st.OutputTokens, &st.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
