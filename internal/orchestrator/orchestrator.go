package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/edugen/internal/content"
	"github.com/abhisek/edugen/internal/llm"
)

// Drafter produces content drafts.
type Drafter interface {
	Generate(ctx context.Context, req content.Request) content.Draft
	Refine(ctx context.Context, req content.Request, feedback []string) content.Draft
}

// Critic judges content drafts.
type Critic interface {
	Review(ctx context.Context, d content.Draft, req content.Request) content.Verdict
}

// Config controls the refinement loop.
type Config struct {
	// MaxRefinements caps the number of Refine calls per run. Zero means the
	// first draft is reviewed once and returned as is.
	MaxRefinements int

	Logger *slog.Logger
}

// DefaultConfig returns the standard loop configuration.
func DefaultConfig() Config {
	return Config{MaxRefinements: 3}
}

// Outcome is how a run ended.
type Outcome string

const (
	OutcomePass   Outcome = "pass"
	OutcomeCapped Outcome = "capped"
)

// Result is everything a run produced.
type Result struct {
	RunID       string          `json:"run_id" yaml:"run_id"`
	Request     content.Request `json:"request" yaml:"request"`
	Final       content.Draft   `json:"final" yaml:"final"`
	Verdict     content.Verdict `json:"verdict" yaml:"verdict"`
	History     content.History `json:"history" yaml:"history"`
	Outcome     Outcome         `json:"outcome" yaml:"outcome"`
	Refinements int             `json:"refinements" yaml:"refinements"`
	Elapsed     time.Duration   `json:"elapsed" yaml:"elapsed"`
}

func (r Result) Passed() bool { return r.Outcome == OutcomePass }

// Phase names a point in the loop reported to observers.
type Phase string

const (
	PhaseGenerate Phase = "generate"
	PhaseRefine   Phase = "refine"
	PhaseReview   Phase = "review"
	PhaseVerdict  Phase = "verdict"
	PhaseDone     Phase = "done"
)

// Event reports progress through a run. Verdict is set for PhaseVerdict and
// Outcome for PhaseDone.
type Event struct {
	RunID      string
	Phase      Phase
	Refinement int
	Verdict    content.Verdict
	Outcome    Outcome
}

// Option configures a Loop.
type Option func(*Loop)

// WithObserver registers a callback invoked synchronously for every event.
func WithObserver(fn func(Event)) Option {
	return func(l *Loop) {
		l.observer = fn
	}
}

// Loop runs generate, review and refine until a draft passes or the
// refinement cap is reached. It holds no per-run state, so one Loop may
// serve concurrent runs.
type Loop struct {
	gen      Drafter
	rev      Critic
	cfg      Config
	logger   *slog.Logger
	observer func(Event)
}

// New creates a Loop. A negative MaxRefinements is treated as zero.
func New(gen Drafter, rev Critic, cfg Config, opts ...Option) *Loop {
	if cfg.MaxRefinements < 0 {
		cfg.MaxRefinements = 0
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loop{gen: gen, rev: rev, cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RunOnce performs one full run for the request. It always returns a
// well-formed Result; service failures show up as degenerate drafts and
// failing verdicts in the history.
func (l *Loop) RunOnce(ctx context.Context, req content.Request) Result {
	start := time.Now()
	runID := uuid.NewString()
	ctx = llm.WithRunID(ctx, runID)

	logger := l.logger.With("run_id", runID, "grade", req.Grade(), "topic", req.Topic())
	emit := func(ev Event) {
		if l.observer != nil {
			ev.RunID = runID
			l.observer(ev)
		}
	}

	logger.InfoContext(ctx, "run started", "max_refinements", l.cfg.MaxRefinements)

	emit(Event{Phase: PhaseGenerate})
	draft := l.gen.Generate(ctx, req)
	stage := content.StageGenerate

	var (
		history     content.History
		verdict     content.Verdict
		outcome     Outcome
		refinements int
	)

	for {
		emit(Event{Phase: PhaseReview, Refinement: refinements})
		verdict = l.rev.Review(ctx, draft, req)
		history.Append(content.Step{Stage: stage, Draft: draft, Verdict: verdict})
		emit(Event{Phase: PhaseVerdict, Refinement: refinements, Verdict: verdict})

		logger.InfoContext(ctx, "draft reviewed",
			"stage", stage,
			"refinement", refinements,
			"status", verdict.Status,
			"feedback_items", len(verdict.Feedback),
			"degenerate", draft.Degenerate(),
		)

		if verdict.Passed() {
			outcome = OutcomePass
			break
		}
		if refinements >= l.cfg.MaxRefinements {
			outcome = OutcomeCapped
			break
		}

		refinements++
		emit(Event{Phase: PhaseRefine, Refinement: refinements})
		draft = l.gen.Refine(ctx, req, verdict.Feedback)
		stage = content.StageRefine
	}

	res := Result{
		RunID:       runID,
		Request:     req,
		Final:       draft,
		Verdict:     verdict,
		History:     history,
		Outcome:     outcome,
		Refinements: refinements,
		Elapsed:     time.Since(start),
	}

	logger.InfoContext(ctx, "run finished",
		"outcome", outcome,
		"refinements", refinements,
		"elapsed_ms", res.Elapsed.Milliseconds(),
	)
	emit(Event{Phase: PhaseDone, Refinement: refinements, Verdict: verdict, Outcome: outcome})
	return res
}
