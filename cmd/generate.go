package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/abhisek/edugen/internal/config"
	"github.com/abhisek/edugen/internal/content"
	"github.com/abhisek/edugen/internal/generator"
	"github.com/abhisek/edugen/internal/llm"
	"github.com/abhisek/edugen/internal/orchestrator"
	"github.com/abhisek/edugen/internal/reviewer"
	"github.com/abhisek/edugen/internal/store"
	"github.com/abhisek/edugen/internal/ui/render"
	"github.com/abhisek/edugen/internal/ui/theme"
	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"
)

const (
	minGrade = 1
	maxGrade = 12
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate, review and refine content for a topic",
	Example: `  edugen generate --grade 4 --topic "Types of angles"
  edugen generate --grade 7 --topic "Photosynthesis" --provider groq --output json`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.IntP("grade", "g", 4, fmt.Sprintf("Grade level (%d-%d)", minGrade, maxGrade))
	f.StringP("topic", "t", "Types of angles", "Topic to teach")
	f.Int("max-refinements", orchestrator.DefaultConfig().MaxRefinements, "Maximum number of refinements after the first review")
	f.String("provider", "", "Service provider: openai, groq, openrouter, compatible, anthropic, gemini, mock")
	f.String("model", "", "Model identifier (provider default when empty)")
	f.String("api-key", "", "API key (overrides configuration and vendor environment variables)")
	f.String("base-url", "", "Base URL for an OpenAI-compatible endpoint")
	f.Duration("timeout", 60*time.Second, "Deadline for a single service call")
	f.StringP("output", "o", "text", "Output format: "+strings.Join(render.Formats, ", "))
	f.Bool("strict", false, "Exit with status 2 when the content never passes review")
	f.Bool("quiet", false, "Suppress progress output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	grade, _ := cmd.Flags().GetInt("grade")
	topic, _ := cmd.Flags().GetString("topic")
	output, _ := cmd.Flags().GetString("output")
	strict, _ := cmd.Flags().GetBool("strict")
	quiet, _ := cmd.Flags().GetBool("quiet")

	if grade < minGrade || grade > maxGrade {
		return fmt.Errorf("--grade must be between %d and %d, got %d", minGrade, maxGrade, grade)
	}
	write, err := render.For(output)
	if err != nil {
		return err
	}
	req, err := content.NewRequest(grade, topic)
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	lc, err := cfg.ProviderConfig()
	if err != nil {
		return fmt.Errorf("text-generation service not configured: %w", err)
	}

	var repo store.UsageRepo
	if cfg.Usage.Enabled {
		s, err := openStore(cfg)
		if err != nil {
			logger.Warn("usage ledger unavailable", "error", err)
		} else {
			defer s.Close()
			repo = s.UsageRepo()
		}
	}

	ctx := cmd.Context()
	provider, err := llm.NewProvider(ctx, lc, logger, repo)
	if err != nil {
		return err
	}

	loop := newLoop(llm.NewClient(provider, lc.Timeout), cfg, logger, progressObserver(cmd.ErrOrStderr(), quiet))
	res := loop.RunOnce(ctx, req)

	if err := write(cmd.OutOrStdout(), res); err != nil {
		return fmt.Errorf("render result: %w", err)
	}
	if strict && !res.Passed() {
		return &ExitError{
			Code: 2,
			Msg:  fmt.Sprintf("content did not pass review after %d refinements", res.Refinements),
		}
	}
	return nil
}

// newLoop assembles the generator, reviewer and loop over a shared client.
func newLoop(client *llm.Client, cfg *config.Config, logger *slog.Logger, opts ...orchestrator.Option) *orchestrator.Loop {
	gen := generator.New(client, generator.Config{
		Validators:    content.DefaultValidators(cfg.Generation.Questions),
		QuestionCount: cfg.Generation.Questions,
		MaxTokens:     cfg.Generation.MaxTokens,
		Temperature:   cfg.Generation.Temperature,
		Logger:        logger,
	})
	rev := reviewer.New(client, reviewer.Config{
		MaxTokens:   cfg.Review.MaxTokens,
		Temperature: cfg.Review.Temperature,
		Logger:      logger,
	})
	return orchestrator.New(gen, rev, orchestrator.Config{
		MaxRefinements: cfg.Loop.MaxRefinements,
		Logger:         logger,
	}, opts...)
}

// progressObserver prints one line per loop phase to w.
func progressObserver(w io.Writer, quiet bool) orchestrator.Option {
	out := colorprofile.NewWriter(w, os.Environ())
	return orchestrator.WithObserver(func(ev orchestrator.Event) {
		if quiet {
			return
		}
		if line := progressLine(ev); line != "" {
			fmt.Fprintln(out, line)
		}
	})
}

func progressLine(ev orchestrator.Event) string {
	switch ev.Phase {
	case orchestrator.PhaseGenerate:
		return theme.Hint.Render("Generating draft...")
	case orchestrator.PhaseRefine:
		return theme.Hint.Render(fmt.Sprintf("Refining draft (%d)...", ev.Refinement))
	case orchestrator.PhaseReview:
		return theme.Hint.Render("Reviewing...")
	case orchestrator.PhaseVerdict:
		if ev.Verdict.Passed() {
			return "  " + render.Status(ev.Verdict)
		}
		return fmt.Sprintf("  %s (%d feedback items)", render.Status(ev.Verdict), len(ev.Verdict.Feedback))
	}
	return ""
}
