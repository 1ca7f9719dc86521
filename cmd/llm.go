package cmd

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/edugen/internal/llm"
	"github.com/abhisek/edugen/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the ledger of text-generation service calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent service calls",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		runID, _ := cmd.Flags().GetString("run")

		repo, closeFn, err := openUsageRepo(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		events, err := repo.QueryLLMRequests(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose, RunID: runID})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		writeEventList(cmd.OutOrStdout(), events)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated token usage and estimated cost",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeFn, err := openUsageRepo(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		ctx := cmd.Context()
		byPurpose, err := repo.UsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := repo.UsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		writeStats(cmd.OutOrStdout(), byPurpose, byModel)
		return nil
	},
}

func openUsageRepo(cmd *cobra.Command) (store.UsageRepo, func(), error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	s, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return s.UsageRepo(), func() { s.Close() }, nil
}

func writeEventList(w io.Writer, events []store.LLMRequestRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No service calls found.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-8s  %-28s  %-6s  %-6s  %-7s  %-8s  %s\n",
		"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "Run", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 104))

	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗ " + truncate(e.ErrorMessage, 40)
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-8s  %-28s  %-6d  %-6d  %-7d  %-8s  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Purpose,
			truncate(e.Model, 28),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			truncate(e.RunID, 8),
			ok,
		)
	}
}

func writeStats(w io.Writer, byPurpose, byModel []store.UsageStat) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No usage recorded yet.")
		return
	}

	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "%-16s  %6s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Failed", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(w, strings.Repeat("─", 80))

	var totalCalls, totalFailed, totalIn, totalOut int
	for _, st := range byPurpose {
		fmt.Fprintf(w, "%-16s  %6d  %6d  %10d  %10d  %10d  %8d\n",
			st.Key, st.Calls, st.Failures, st.InputTokens, st.OutputTokens, st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
		totalCalls += st.Calls
		totalFailed += st.Failures
		totalIn += st.InputTokens
		totalOut += st.OutputTokens
	}

	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "%-16s  %6d  %6d  %10d  %10d  %10d\n",
		"TOTAL", totalCalls, totalFailed, totalIn, totalOut, totalIn+totalOut)

	if len(byModel) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n",
		"Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, strings.Repeat("─", 80))

	var totalCost float64
	var unknownModels []string
	for _, mu := range byModel {
		cost := llm.LookupCost(mu.Key)
		if cost == nil {
			unknownModels = append(unknownModels, mu.Key)
			fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(mu.Key, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
			continue
		}
		c := cost.Cost(mu.InputTokens, mu.OutputTokens)
		totalCost += c
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(mu.Key, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c))
	}

	fmt.Fprintln(w, strings.Repeat("─", 80))
	label := "TOTAL"
	if len(unknownModels) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n",
		label, "", "", "", formatCost(totalCost))

	if len(unknownModels) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
	}
}

// truncate shortens s to at most max runes.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (generate, refine, review)")
	llmListCmd.Flags().String("run", "", "Filter by run ID")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
