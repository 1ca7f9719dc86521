package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidGrade is returned by NewRequest for a grade below 1.
	ErrInvalidGrade = errors.New("grade must be a positive integer")

	// ErrEmptyTopic is returned by NewRequest for a blank topic.
	ErrEmptyTopic = errors.New("topic must not be empty")
)

// Request identifies what to produce: a grade level and a topic.
// It is immutable once built.
type Request struct {
	grade int
	topic string
}

// NewRequest validates and builds a Request. The topic is trimmed.
func NewRequest(grade int, topic string) (Request, error) {
	if grade < 1 {
		return Request{}, fmt.Errorf("%w: got %d", ErrInvalidGrade, grade)
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Request{}, ErrEmptyTopic
	}
	return Request{grade: grade, topic: topic}, nil
}

func (r Request) Grade() int    { return r.grade }
func (r Request) Topic() string { return r.topic }

func (r Request) String() string {
	return fmt.Sprintf("grade %d: %s", r.grade, r.topic)
}

func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"grade": r.grade, "topic": r.topic})
}

func (r Request) MarshalYAML() (any, error) {
	return map[string]any{"grade": r.grade, "topic": r.topic}, nil
}

// MCQ is a multiple-choice question. Answer holds the label ("A".."D") of
// the correct option once the question has been normalized.
type MCQ struct {
	Question string   `json:"question" yaml:"question"`
	Options  []string `json:"options" yaml:"options"`
	Answer   string   `json:"answer" yaml:"answer"`
}

// CorrectOption returns the option the answer label points at, or "" if the
// answer does not resolve.
func (m MCQ) CorrectOption() string {
	label, ok := CanonicalAnswer(m.Options, m.Answer)
	if !ok {
		return ""
	}
	for i, opt := range m.Options {
		if optionLabel(opt, i) == label {
			return opt
		}
	}
	return ""
}

// Draft is one piece of generated content: an explanation followed by
// multiple-choice questions.
type Draft struct {
	Explanation string `json:"explanation" yaml:"explanation"`
	MCQs        []MCQ  `json:"mcqs" yaml:"mcqs"`
}

// DegenerateDraft is the draft produced when generation fails. The cause is
// carried in the explanation so that a reviewer sees it.
func DegenerateDraft(prefix string, cause string) Draft {
	return Draft{
		Explanation: fmt.Sprintf("%s: %s", prefix, cause),
		MCQs:        []MCQ{},
	}
}

// Degenerate reports whether the draft carries no questions.
func (d Draft) Degenerate() bool {
	return len(d.MCQs) == 0
}

// Status is a reviewer's decision.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Verdict is the outcome of reviewing a draft. Feedback is empty exactly
// when Status is StatusPass.
type Verdict struct {
	Status   Status   `json:"status" yaml:"status"`
	Feedback []string `json:"feedback" yaml:"feedback"`
}

// Pass returns a passing verdict.
func Pass() Verdict {
	return Verdict{Status: StatusPass, Feedback: []string{}}
}

// Fail returns a failing verdict with the given feedback.
func Fail(feedback ...string) Verdict {
	return Verdict{Status: StatusFail, Feedback: append([]string{}, feedback...)}
}

func (v Verdict) Passed() bool { return v.Status == StatusPass }

// Stage names the step that produced a draft.
type Stage string

const (
	StageGenerate Stage = "generate"
	StageRefine   Stage = "refine"
)

// Step is a draft together with the verdict it received.
type Step struct {
	Stage   Stage   `json:"stage" yaml:"stage"`
	Draft   Draft   `json:"draft" yaml:"draft"`
	Verdict Verdict `json:"verdict" yaml:"verdict"`
}

// History is the append-only record of a run. The zero value is empty and
// ready to use.
type History struct {
	steps []Step
}

func (h *History) Append(s Step) {
	h.steps = append(h.steps, s)
}

func (h History) Len() int { return len(h.steps) }

// Steps returns a copy of the recorded steps in order.
func (h History) Steps() []Step {
	out := make([]Step, len(h.steps))
	copy(out, h.steps)
	return out
}

// Last returns the most recent step.
func (h History) Last() (Step, bool) {
	if len(h.steps) == 0 {
		return Step{}, false
	}
	return h.steps[len(h.steps)-1], true
}

func (h History) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Steps())
}

func (h History) MarshalYAML() (any, error) {
	return h.Steps(), nil
}
