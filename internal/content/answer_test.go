package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var angleOptions = []string{"A) Right", "B) Acute", "C) Obtuse", "D) Straight"}

func TestCanonicalAnswer(t *testing.T) {
	tests := []struct {
		name    string
		options []string
		answer  string
		want    string
		ok      bool
	}{
		{"bare label", angleOptions, "B", "B", true},
		{"lowercase label", angleOptions, "b", "B", true},
		{"label with paren", angleOptions, "B)", "B", true},
		{"parenthesized label", angleOptions, "(B)", "B", true},
		{"label with period", angleOptions, "C.", "C", true},
		{"option prefix", angleOptions, "Option D", "D", true},
		{"full labeled option", angleOptions, "B) Acute", "B", true},
		{"full option different case and spacing", angleOptions, "  b)   ACUTE ", "B", true},
		{"labeled with other delimiter", angleOptions, "B. Acute", "B", true},
		{"option text only", angleOptions, "Obtuse", "C", true},
		{"option text folded", angleOptions, "straight", "D", true},
		{"label disagrees with text", angleOptions, "B) Obtuse", "", false},
		{"unknown text", angleOptions, "Reflex", "", false},
		{"out of range label", angleOptions, "E", "", false},
		{"empty answer", angleOptions, "  ", "", false},
		{"no options", nil, "A", "", false},
		{"unlabeled options by text", []string{"Right", "Acute", "Obtuse", "Straight"}, "Acute", "B", true},
		{"unlabeled options by label", []string{"Right", "Acute", "Obtuse", "Straight"}, "D", "D", true},
		{"unlabeled options by labeled answer", []string{"Right", "Acute", "Obtuse", "Straight"}, "C) Obtuse", "C", true},
		{"text starting with a letter and hyphen", []string{"A) D-Day", "B) V-E Day", "C) Pearl Harbor", "D) Midway"}, "D-Day", "A", true},
		{"unlabeled text starting with a letter and hyphen", []string{"T-cells", "B-cells", "Red cells", "Platelets"}, "B-cells", "B", true},
		{"text that reads like a labeled answer", []string{"A) C: the hypotenuse", "B) the shortest leg", "C) the right angle", "D) the longest leg"}, "C: the hypotenuse", "A", true},
		{"duplicate option text is ambiguous", []string{"Right", "Acute", "Acute", "Straight"}, "Acute", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CanonicalAnswer(tt.options, tt.answer)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalAnswer_UnicodeNormalization(t *testing.T) {
	options := []string{"A) Café", "B) Thé", "C) Eau", "D) Lait"}
	decomposed := "Cafe\u0301"

	got, ok := CanonicalAnswer(options, decomposed)
	require.True(t, ok)
	assert.Equal(t, "A", got)
}

func TestLabelOptions(t *testing.T) {
	got := LabelOptions([]string{" Right ", "B) Acute", "Obtuse", "(D) Straight"})
	assert.Equal(t, []string{"A) Right", "B) Acute", "C) Obtuse", "(D) Straight"}, got)
}

func TestLabelOptions_LeadingLetterIsNotALabel(t *testing.T) {
	got := LabelOptions([]string{"B-cells", "T-cells", "Red cells", "Platelets"})
	assert.Equal(t, []string{"A) B-cells", "B) T-cells", "C) Red cells", "D) Platelets"}, got)

	got = LabelOptions([]string{"A.M. radio", "FM radio", "C - band", "D: text"})
	assert.Equal(t, []string{"A) A.M. radio", "B) FM radio", "C - band", "D: text"}, got)
}

func TestNormalize_OptionsStartingWithLetters(t *testing.T) {
	d := Draft{
		Explanation: "Blood carries several kinds of cells.",
		MCQs: []MCQ{{
			Question: "Which cells make antibodies?",
			Options:  []string{"B-cells", "T-cells", "Red cells", "Platelets"},
			Answer:   "B-cells",
		}},
	}

	got := Normalize(d)
	require.Len(t, got.MCQs, 1)
	assert.Equal(t, "A", got.MCQs[0].Answer)
	assert.Nil(t, Validate(&got, []Validator{&StructuralValidator{QuestionCount: 1}, &AnswerKeyValidator{}}))
}

func TestNormalize(t *testing.T) {
	d := Draft{
		Explanation: "  An angle is formed by two rays.\n",
		MCQs: []MCQ{
			{Question: " Which angle is less than 90 degrees? ", Options: []string{"Right", "Acute", "Obtuse", "Straight"}, Answer: "Acute"},
			{Question: "Which angle is exactly 180 degrees?", Options: angleOptions, Answer: "D) Straight"},
			{Question: "Which angle is 270 degrees?", Options: angleOptions, Answer: "Reflex"},
		},
	}

	got := Normalize(d)
	assert.Equal(t, "An angle is formed by two rays.", got.Explanation)
	require.Len(t, got.MCQs, 3)
	assert.Equal(t, "Which angle is less than 90 degrees?", got.MCQs[0].Question)
	assert.Equal(t, []string{"A) Right", "B) Acute", "C) Obtuse", "D) Straight"}, got.MCQs[0].Options)
	assert.Equal(t, "B", got.MCQs[0].Answer)
	assert.Equal(t, "D", got.MCQs[1].Answer)
	assert.Equal(t, "Reflex", got.MCQs[2].Answer, "unresolvable answers are left for the validators")

	// The input is not modified.
	assert.Equal(t, "Acute", d.MCQs[0].Answer)
}

func TestMCQ_CorrectOption(t *testing.T) {
	q := MCQ{Question: "q", Options: angleOptions, Answer: "C"}
	assert.Equal(t, "C) Obtuse", q.CorrectOption())

	q.Answer = "Z"
	assert.Empty(t, q.CorrectOption())
}
