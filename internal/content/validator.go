package content

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validator checks a normalized draft.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages and logs,
	// e.g. "structural", "answer-key".
	Name() string

	// Validate returns nil if the draft passes the check.
	Validate(d *Draft) *ValidationError
}

// ValidationError describes why a draft failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Limits on generated text, in characters.
const (
	MaxExplanationLength = 6000
	MaxQuestionLength    = 500
	MaxOptionLength      = 200
)

// StructuralValidator checks counts, presence and length limits.
type StructuralValidator struct {
	// QuestionCount is the exact number of MCQs required.
	QuestionCount int
}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(d *Draft) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(d.Explanation) == "" {
		return fail("explanation is empty")
	}
	if utf8.RuneCountInString(d.Explanation) > MaxExplanationLength {
		return fail("explanation exceeds %d characters", MaxExplanationLength)
	}
	if len(d.MCQs) != v.QuestionCount {
		return fail("expected %d questions, got %d", v.QuestionCount, len(d.MCQs))
	}

	for i, q := range d.MCQs {
		n := i + 1
		if strings.TrimSpace(q.Question) == "" {
			return fail("question %d is empty", n)
		}
		if utf8.RuneCountInString(q.Question) > MaxQuestionLength {
			return fail("question %d exceeds %d characters", n, MaxQuestionLength)
		}
		if len(q.Options) != OptionCount {
			return fail("question %d has %d options, expected %d", n, len(q.Options), OptionCount)
		}
		seen := make(map[string]bool, len(q.Options))
		labels := make(map[string]bool, len(q.Options))
		for j, opt := range q.Options {
			label := optionLabel(opt, j)
			if labels[label] {
				return fail("question %d repeats option label %q", n, label)
			}
			labels[label] = true

			text := optionText(opt)
			if text == "" {
				return fail("question %d has an empty option", n)
			}
			if utf8.RuneCountInString(text) > MaxOptionLength {
				return fail("question %d has an option exceeding %d characters", n, MaxOptionLength)
			}
			key := fold(text)
			if seen[key] {
				return fail("question %d has duplicate option %q", n, text)
			}
			seen[key] = true
		}
	}
	return nil
}

// AnswerKeyValidator checks that every answer is the label of one of the
// question's options.
type AnswerKeyValidator struct{}

func (v *AnswerKeyValidator) Name() string { return "answer-key" }

func (v *AnswerKeyValidator) Validate(d *Draft) *ValidationError {
	for i, q := range d.MCQs {
		if !isLabelOf(q.Answer, q.Options) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: answer %q matches none of the options", i+1, q.Answer),
			}
		}
	}
	return nil
}

func isLabelOf(answer string, options []string) bool {
	for i, opt := range options {
		if optionLabel(opt, i) == answer {
			return true
		}
	}
	return false
}

// DefaultValidators returns the standard chain for drafts with the given
// number of questions.
func DefaultValidators(questionCount int) []Validator {
	return []Validator{
		&StructuralValidator{QuestionCount: questionCount},
		&AnswerKeyValidator{},
	}
}

// Validate runs the validators in order and returns the first failure.
func Validate(d *Draft, validators []Validator) *ValidationError {
	for _, v := range validators {
		if verr := v.Validate(d); verr != nil {
			return verr
		}
	}
	return nil
}
