package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CallReturnsContent(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"status":"pass"}`)})
	c := NewClient(mock, time.Second)

	got, serr := c.Call(context.Background(), Call{
		Purpose:     "review",
		System:      "sys",
		User:        "user",
		Temperature: 0.3,
	})
	require.Nil(t, serr)
	assert.JSONEq(t, `{"status":"pass"}`, string(got))

	req, ok := mock.LastCall()
	require.True(t, ok)
	assert.Equal(t, "sys", req.System)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, RoleUser, req.Messages[0].Role)
	assert.Equal(t, "user", req.Messages[0].Content)
	assert.Equal(t, DefaultMaxTokens, req.MaxTokens)
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
}

func TestClient_CallAttachesPurpose(t *testing.T) {
	var seen string
	p := providerFunc(func(ctx context.Context, _ Request) (*Response, error) {
		seen = PurposeFrom(ctx)
		return &Response{Content: json.RawMessage(`{}`)}, nil
	})

	_, serr := NewClient(p, 0).Call(context.Background(), Call{Purpose: "generate"})
	require.Nil(t, serr)
	assert.Equal(t, "generate", seen)
}

func TestClient_CallErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		resp MockResponse
		want ServiceErrorKind
	}{
		{"empty payload", MockResponse{Content: json.RawMessage("  ")}, KindEmpty},
		{"malformed payload", MockResponse{Content: json.RawMessage(`{"status":`)}, KindInvalidJSON},
		{"empty from provider", MockResponse{Err: &ErrEmptyResponse{Provider: "mock"}}, KindEmpty},
		{"rate limited", MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}}, KindRateLimit},
		{"unavailable", MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("502")}}, KindUnavailable},
		{"truncated", MockResponse{Err: &ErrMaxTokensExceeded{}}, KindTruncated},
		{
			"schema violation",
			MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`{"x":1}`), Err: errors.New("missing explanation")}},
			KindSchema,
		},
		{
			"invalid json from provider",
			MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`nope`), Err: errors.New("bad")}},
			KindInvalidJSON,
		},
		{"transport", MockResponse{Err: errors.New("connection refused")}, KindTransport},
		{"cancelled", MockResponse{Err: fmt.Errorf("wrapped: %w", context.Canceled)}, KindCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(NewMockProvider(tt.resp), time.Second)
			got, serr := c.Call(context.Background(), Call{User: "x"})
			assert.Nil(t, got)
			require.NotNil(t, serr)
			assert.Equal(t, tt.want, serr.Kind)
			assert.NotEmpty(t, serr.Cause)
			assert.Equal(t, serr.Cause, serr.Error())
		})
	}
}

func TestClient_CallTimeout(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`), Delay: time.Second})
	c := NewClient(mock, 10*time.Millisecond)

	_, serr := c.Call(context.Background(), Call{User: "x"})
	require.NotNil(t, serr)
	assert.Equal(t, KindTimeout, serr.Kind)
	assert.Contains(t, serr.Cause, "10ms")
	assert.ErrorIs(t, serr, context.DeadlineExceeded)
}

func TestClient_CallRecoversPanic(t *testing.T) {
	c := NewClient(NewMockProvider(MockResponse{Panic: "boom"}), time.Second)

	got, serr := c.Call(context.Background(), Call{User: "x"})
	assert.Nil(t, got)
	require.NotNil(t, serr)
	assert.Equal(t, KindTransport, serr.Kind)
	assert.Contains(t, serr.Cause, "boom")
}

func TestClient_NilProvider(t *testing.T) {
	var c *Client
	_, serr := c.Call(context.Background(), Call{})
	require.NotNil(t, serr)
	assert.Equal(t, KindUnavailable, serr.Kind)
	assert.Empty(t, c.ModelID())

	_, serr = NewClient(nil, 0).Call(context.Background(), Call{})
	require.NotNil(t, serr)
	assert.Equal(t, KindUnavailable, serr.Kind)
}

func TestClient_ExhaustedMockHasReadableCause(t *testing.T) {
	_, serr := NewClient(NewMockProvider(), 0).Call(context.Background(), Call{})
	require.NotNil(t, serr)
	assert.Equal(t, "the text-generation service is unavailable", serr.Cause)
}

type providerFunc func(ctx context.Context, req Request) (*Response, error)

func (f providerFunc) Generate(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

func (f providerFunc) ModelID() string { return "func" }
