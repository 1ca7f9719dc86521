// Package render formats a finished run for the terminal or for machines.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/colorprofile"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/edugen/internal/content"
	"github.com/abhisek/edugen/internal/orchestrator"
	"github.com/abhisek/edugen/internal/ui/theme"
)

// Func writes a result to w.
type Func func(w io.Writer, res orchestrator.Result) error

// Formats lists the accepted output format names.
var Formats = []string{"text", "json", "yaml"}

// For returns the renderer for a format name.
func For(format string) (Func, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return Text, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// view is the machine-readable shape of a result. Elapsed is a duration
// string such as "1.52s".
type view struct {
	RunID       string          `json:"run_id" yaml:"run_id"`
	Request     content.Request `json:"request" yaml:"request"`
	Outcome     string          `json:"outcome" yaml:"outcome"`
	Refinements int             `json:"refinements" yaml:"refinements"`
	Elapsed     string          `json:"elapsed" yaml:"elapsed"`
	Final       content.Draft   `json:"final" yaml:"final"`
	Verdict     content.Verdict `json:"verdict" yaml:"verdict"`
	History     content.History `json:"history" yaml:"history"`
}

func newView(res orchestrator.Result) view {
	return view{
		RunID:       res.RunID,
		Request:     res.Request,
		Outcome:     string(res.Outcome),
		Refinements: res.Refinements,
		Elapsed:     res.Elapsed.String(),
		Final:       res.Final,
		Verdict:     res.Verdict,
		History:     res.History,
	}
}

// JSON writes the result as indented JSON.
func JSON(w io.Writer, res orchestrator.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newView(res))
}

// YAML writes the result as a YAML document.
func YAML(w io.Writer, res orchestrator.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newView(res)); err != nil {
		return err
	}
	return enc.Close()
}

// Text writes a styled, human-readable report. Colors are downsampled to
// what w supports and stripped when w is not a terminal.
func Text(w io.Writer, res orchestrator.Result) error {
	out := colorprofile.NewWriter(w, os.Environ())

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Grade %d: %s", res.Request.Grade(), res.Request.Topic())))
	b.WriteString("\n")

	b.WriteString(theme.Heading.Render("Explanation"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(res.Final.Explanation))
	b.WriteString("\n")

	if len(res.Final.MCQs) > 0 {
		b.WriteString(theme.Heading.Render("Questions"))
		b.WriteString("\n")
		for i, q := range res.Final.MCQs {
			writeMCQ(&b, i+1, q)
		}
	}

	b.WriteString(theme.Heading.Render("Review"))
	b.WriteString("\n")
	for i, step := range res.History.Steps() {
		writeStep(&b, i+1, step)
	}

	b.WriteString("\n")
	b.WriteString(Outcome(res))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("run %s in %s", res.RunID, res.Elapsed.Round(10*time.Millisecond))))
	b.WriteString("\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func writeMCQ(b *strings.Builder, n int, q content.MCQ) {
	fmt.Fprintf(b, "\n%d. %s\n", n, q.Question)
	correct := q.CorrectOption()
	for _, opt := range q.Options {
		if opt != "" && opt == correct {
			fmt.Fprintf(b, "   %s\n", theme.Correct.Render(opt+"  ✓"))
			continue
		}
		fmt.Fprintf(b, "   %s\n", opt)
	}
	if correct == "" {
		fmt.Fprintf(b, "   %s\n", theme.Hint.Render("answer: "+q.Answer))
	}
}

func writeStep(b *strings.Builder, n int, step content.Step) {
	fmt.Fprintf(b, "%d. %-8s %s\n", n, step.Stage, Status(step.Verdict))
	for _, item := range step.Verdict.Feedback {
		fmt.Fprintf(b, "   - %s\n", item)
	}
}

// Status renders a verdict's status word.
func Status(v content.Verdict) string {
	if v.Passed() {
		return theme.Pass.Render("pass")
	}
	return theme.Fail.Render("fail")
}

// Outcome summarizes how the run ended.
func Outcome(res orchestrator.Result) string {
	if res.Passed() {
		return theme.Pass.Render(fmt.Sprintf("Passed review after %s.", plural(res.Refinements, "refinement")))
	}
	return theme.Capped.Render(fmt.Sprintf("Stopped after %s without passing review; showing the last draft.", plural(res.Refinements, "refinement")))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
