package content

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// OptionCount is the number of options every MCQ carries.
const OptionCount = 4

// Labels are the option labels in positional order.
var Labels = []string{"A", "B", "C", "D"}

var (
	// "A) text", "A. text", "(A) text", "A: text", "A - text". A period,
	// colon or hyphen only counts when followed by whitespace, so "B-cells"
	// and "A.M. radio" stay unlabeled.
	labeledOption = regexp.MustCompile(`^\(?([A-Da-d])(?:\s*[)\]]\s*|\s*[.:]\s+|\s+-\s+)(.*)$`)

	// "A", "B)", "(C)", "[D]", "Option B", "Answer: c."
	bareLabel = regexp.MustCompile(`^(?i:(?:option|answer)\s*:?\s*)?[(\[]?\s*([A-Da-d])\s*[)\].:]?$`)

	folder = cases.Fold()
)

// fold normalizes s for comparison: NFC, case-folded, whitespace collapsed.
func fold(s string) string {
	s = folder.String(norm.NFC.String(s))
	return strings.Join(strings.Fields(s), " ")
}

// splitLabel separates a leading option label from the option text.
func splitLabel(s string) (label, text string, ok bool) {
	m := labeledOption.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", "", false
	}
	return strings.ToUpper(m[1]), strings.TrimSpace(m[2]), true
}

// optionLabel returns the option's own label, or its positional one.
func optionLabel(opt string, i int) string {
	if label, _, ok := splitLabel(opt); ok {
		return label
	}
	if i < len(Labels) {
		return Labels[i]
	}
	return ""
}

// optionText returns the option without its label.
func optionText(opt string) string {
	if _, text, ok := splitLabel(opt); ok {
		return text
	}
	return strings.TrimSpace(opt)
}

// LabelOptions prefixes every unlabeled option with its positional label,
// e.g. "Acute" in second position becomes "B) Acute". Labeled options are
// kept as they are, apart from surrounding whitespace.
func LabelOptions(options []string) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		opt = strings.TrimSpace(norm.NFC.String(opt))
		if _, _, ok := splitLabel(opt); ok || i >= len(Labels) {
			out[i] = opt
			continue
		}
		out[i] = Labels[i] + ") " + opt
	}
	return out
}

// CanonicalAnswer resolves an answer to the label of the option it names.
// The answer may be a bare label ("B", "B)", "(b)"), the full labeled
// option ("B) Acute") or the option text alone ("acute"). It reports false
// when the answer names no option or more than one.
func CanonicalAnswer(options []string, answer string) (string, bool) {
	answer = strings.TrimSpace(norm.NFC.String(answer))
	if answer == "" || len(options) == 0 {
		return "", false
	}

	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = optionLabel(opt, i)
	}

	if m := bareLabel.FindStringSubmatch(answer); m != nil {
		want := strings.ToUpper(m[1])
		for _, l := range labels {
			if l == want {
				return l, true
			}
		}
	}

	folded := fold(answer)
	if label, n := matchOption(options, labels, func(opt string) bool { return fold(opt) == folded }); n > 0 {
		return label, n == 1
	}

	// A labeled answer resolves when it agrees with the option under that
	// label. Otherwise it may still be option text that happens to start
	// like a label ("C: the hypotenuse").
	if label, text, ok := splitLabel(answer); ok {
		for i, opt := range options {
			if labels[i] == label && fold(optionText(opt)) == fold(text) {
				return label, true
			}
		}
	}

	label, n := matchOption(options, labels, func(opt string) bool { return fold(optionText(opt)) == folded })
	return label, n == 1
}

// matchOption returns the label of the first option satisfying match and
// the number of options that do.
func matchOption(options, labels []string, match func(string) bool) (string, int) {
	first, n := "", 0
	for i, opt := range options {
		if !match(opt) {
			continue
		}
		if n == 0 {
			first = labels[i]
		}
		n++
	}
	if n != 1 {
		return "", n
	}
	return first, n
}

// Normalize labels options and rewrites every resolvable answer to its
// canonical label. Unresolvable answers are left untouched for the
// validators to report.
func Normalize(d Draft) Draft {
	out := Draft{
		Explanation: strings.TrimSpace(d.Explanation),
		MCQs:        make([]MCQ, len(d.MCQs)),
	}
	for i, q := range d.MCQs {
		opts := LabelOptions(q.Options)
		answer := strings.TrimSpace(q.Answer)
		if label, ok := CanonicalAnswer(opts, answer); ok {
			answer = label
		}
		out.MCQs[i] = MCQ{
			Question: strings.TrimSpace(q.Question),
			Options:  opts,
			Answer:   answer,
		}
	}
	return out
}
