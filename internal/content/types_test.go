package content

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	r, err := NewRequest(4, "  Types of angles ")
	require.NoError(t, err)
	assert.Equal(t, 4, r.Grade())
	assert.Equal(t, "Types of angles", r.Topic())
	assert.Equal(t, "grade 4: Types of angles", r.String())

	_, err = NewRequest(0, "Fractions")
	assert.True(t, errors.Is(err, ErrInvalidGrade))

	_, err = NewRequest(-3, "Fractions")
	assert.ErrorIs(t, err, ErrInvalidGrade)

	_, err = NewRequest(5, " \t ")
	assert.ErrorIs(t, err, ErrEmptyTopic)
}

func TestRequest_JSON(t *testing.T) {
	r, err := NewRequest(7, "Photosynthesis")
	require.NoError(t, err)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"grade":7,"topic":"Photosynthesis"}`, string(b))
}

func TestDegenerateDraft(t *testing.T) {
	d := DegenerateDraft("Error generating content", "the request was cancelled")
	assert.True(t, d.Degenerate())
	assert.Equal(t, "Error generating content: the request was cancelled", d.Explanation)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"explanation":"Error generating content: the request was cancelled","mcqs":[]}`, string(b))

	assert.False(t, validDraft().Degenerate())
}

func TestVerdict(t *testing.T) {
	p := Pass()
	assert.True(t, p.Passed())
	assert.Empty(t, p.Feedback)

	items := []string{"Simplify vocabulary"}
	f := Fail(items...)
	assert.False(t, f.Passed())
	assert.Equal(t, []string{"Simplify vocabulary"}, f.Feedback)

	items[0] = "changed"
	assert.Equal(t, "Simplify vocabulary", f.Feedback[0], "Fail copies its feedback")
}

func TestHistory(t *testing.T) {
	var h History
	_, ok := h.Last()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())

	h.Append(Step{Stage: StageGenerate, Draft: validDraft(), Verdict: Fail("too hard")})
	h.Append(Step{Stage: StageRefine, Draft: validDraft(), Verdict: Pass()})

	assert.Equal(t, 2, h.Len())
	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, StageRefine, last.Stage)

	steps := h.Steps()
	steps[0].Stage = StageRefine
	assert.Equal(t, StageGenerate, h.Steps()[0].Stage, "Steps returns a copy")

	b, err := json.Marshal(h)
	require.NoError(t, err)
	var decoded []Step
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, StatusFail, decoded[0].Verdict.Status)
	assert.Equal(t, []string{"too hard"}, decoded[0].Verdict.Feedback)
}
