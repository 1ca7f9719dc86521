package reviewer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edugen/internal/content"
	"github.com/abhisek/edugen/internal/llm"
)

func testRequest(t *testing.T) content.Request {
	t.Helper()
	req, err := content.NewRequest(4, "Types of angles")
	require.NoError(t, err)
	return req
}

func testDraft() content.Draft {
	opts := []string{"A) Right", "B) Acute", "C) Obtuse", "D) Straight"}
	return content.Draft{
		Explanation: "An angle is formed when two rays meet.",
		MCQs: []content.MCQ{
			{Question: "Which angle is less than 90 degrees?", Options: opts, Answer: "B"},
			{Question: "Which angle is exactly 90 degrees?", Options: opts, Answer: "A"},
			{Question: "Which angle is exactly 180 degrees?", Options: opts, Answer: "D"},
		},
	}
}

func newTestReviewer(responses ...llm.MockResponse) (*Reviewer, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return New(llm.NewClient(mock, time.Second), DefaultConfig()), mock
}

func TestReview_Normalization(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want content.Verdict
	}{
		{
			name: "pass with empty feedback",
			raw:  `{"status":"pass","feedback":[]}`,
			want: content.Pass(),
		},
		{
			name: "pass with positive remarks",
			raw:  `{"status":"PASS","feedback":["Great job"]}`,
			want: content.Pass(),
		},
		{
			name: "fail with list",
			raw:  `{"status":"fail","feedback":["Simplify vocabulary","Fix question 2"]}`,
			want: content.Fail("Simplify vocabulary", "Fix question 2"),
		},
		{
			name: "fail with bare string",
			raw:  `{"status":"fail","feedback":"fix X"}`,
			want: content.Fail("fix X"),
		},
		{
			name: "fail with blank items",
			raw:  `{"status":" Fail ","feedback":["", "  ", "fix X"]}`,
			want: content.Fail("fix X"),
		},
		{
			name: "fail without feedback",
			raw:  `{"status":"fail"}`,
			want: content.Fail(genericFeedback),
		},
		{
			name: "fail with null feedback",
			raw:  `{"status":"fail","feedback":null}`,
			want: content.Fail(genericFeedback),
		},
		{
			name: "non-string feedback items",
			raw:  `{"status":"fail","feedback":[{"point":"fix X"}, 3]}`,
			want: content.Fail(`{"point":"fix X"}`, "3"),
		},
		{
			name: "unknown status",
			raw:  `{"status":"needs work","feedback":["fix X"]}`,
			want: content.Fail(`The reviewer returned an unrecognized status "needs work".`, "fix X"),
		},
		{
			name: "missing status",
			raw:  `{"feedback":["fix X"]}`,
			want: content.Fail(`The reviewer returned an unrecognized status "".`, "fix X"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rev, _ := newTestReviewer(llm.MockResponse{Content: json.RawMessage(tt.raw)})
			got := rev.Review(context.Background(), testDraft(), testRequest(t))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReview_FeedbackEmptyIffPass(t *testing.T) {
	for _, raw := range []string{
		`{"status":"pass","feedback":["nice"]}`,
		`{"status":"fail"}`,
		`{"status":"maybe"}`,
		`not json`,
	} {
		rev, _ := newTestReviewer(llm.MockResponse{Content: json.RawMessage(raw)})
		v := rev.Review(context.Background(), testDraft(), testRequest(t))
		assert.Equal(t, v.Passed(), len(v.Feedback) == 0, "raw %s gave %+v", raw, v)
	}
}

func TestReview_ServiceError(t *testing.T) {
	rev, _ := newTestReviewer(llm.MockResponse{Err: errors.New("connection reset by peer")})

	v := rev.Review(context.Background(), testDraft(), testRequest(t))

	assert.Equal(t, content.StatusFail, v.Status)
	require.Len(t, v.Feedback, 1)
	assert.True(t, strings.HasPrefix(v.Feedback[0], "Error during review: "), v.Feedback[0])
	assert.Contains(t, v.Feedback[0], "connection reset by peer")
}

func TestReview_SchemaViolation(t *testing.T) {
	rev, _ := newTestReviewer(llm.MockResponse{Err: &llm.ErrInvalidResponse{
		Content: json.RawMessage(`{"status":"fail","feedback":3}`),
		Err:     errors.New("feedback: got number"),
	}})

	v := rev.Review(context.Background(), testDraft(), testRequest(t))
	require.Len(t, v.Feedback, 1)
	assert.Contains(t, v.Feedback[0], "did not match the expected format")
}

func TestReview_RequestShape(t *testing.T) {
	rev, mock := newTestReviewer(llm.MockResponse{Content: json.RawMessage(`{"status":"pass"}`)})

	rev.Review(context.Background(), testDraft(), testRequest(t))

	call, ok := mock.LastCall()
	require.True(t, ok)
	assert.Equal(t, systemPrompt, call.System)
	assert.Same(t, VerdictSchema, call.Schema)
	assert.True(t, call.Schema.Loose)
	assert.InDelta(t, 0.3, call.Temperature, 1e-9)
}

func TestReview_DegenerateDraftIsReviewed(t *testing.T) {
	rev, mock := newTestReviewer(llm.MockResponse{Content: json.RawMessage(`{"status":"fail","feedback":["No questions were provided"]}`)})
	d := content.DegenerateDraft("Error generating content", "the request was cancelled")

	v := rev.Review(context.Background(), d, testRequest(t))

	assert.False(t, v.Passed())
	call, _ := mock.LastCall()
	assert.Contains(t, call.Messages[0].Content, "Error generating content: the request was cancelled")
}
