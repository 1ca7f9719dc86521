package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ServiceErrorKind classifies why a service call failed.
type ServiceErrorKind string

const (
	KindTransport   ServiceErrorKind = "transport"
	KindRateLimit   ServiceErrorKind = "rate_limit"
	KindUnavailable ServiceErrorKind = "unavailable"
	KindEmpty       ServiceErrorKind = "empty"
	KindInvalidJSON ServiceErrorKind = "invalid_json"
	KindSchema      ServiceErrorKind = "schema"
	KindTimeout     ServiceErrorKind = "timeout"
	KindCancelled   ServiceErrorKind = "cancelled"
	KindTruncated   ServiceErrorKind = "truncated"
)

// ServiceError is the only failure Client.Call reports. Cause is a
// human-readable sentence suitable for showing to an end user.
type ServiceError struct {
	Kind  ServiceErrorKind
	Cause string
	Err   error
}

func (e *ServiceError) Error() string { return e.Cause }

func (e *ServiceError) Unwrap() error { return e.Err }

// Call is a single system + user exchange with the service.
type Call struct {
	// Purpose labels the call in logs and the usage ledger,
	// e.g. "generate", "refine", "review".
	Purpose     string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	Schema      *Schema
}

// DefaultMaxTokens is used when a Call does not set MaxTokens.
const DefaultMaxTokens = 2048

// Client wraps a Provider with the structured-output contract used by the
// content pipeline: every call either yields a JSON document or a
// *ServiceError. It holds no mutable state and is safe for concurrent use.
type Client struct {
	provider Provider
	timeout  time.Duration
}

// NewClient creates a Client. A zero timeout disables the per-call deadline.
func NewClient(provider Provider, timeout time.Duration) *Client {
	return &Client{provider: provider, timeout: timeout}
}

// ModelID reports the model behind the client.
func (c *Client) ModelID() string {
	if c == nil || c.provider == nil {
		return ""
	}
	return c.provider.ModelID()
}

// Call sends the exchange and returns the JSON payload. Transport failures,
// non-2xx responses, empty payloads, malformed JSON, schema violations and
// deadline expiry all come back as a *ServiceError; Call never panics.
func (c *Client) Call(ctx context.Context, call Call) (content json.RawMessage, serr *ServiceError) {
	if c == nil || c.provider == nil {
		return nil, &ServiceError{Kind: KindUnavailable, Cause: "no text-generation service is configured"}
	}

	defer func() {
		if r := recover(); r != nil {
			content = nil
			serr = &ServiceError{
				Kind:  KindTransport,
				Cause: fmt.Sprintf("text-generation client failed unexpectedly: %v", r),
			}
		}
	}()

	if call.Purpose != "" {
		ctx = WithPurpose(ctx, call.Purpose)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	maxTokens := call.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	resp, err := c.provider.Generate(ctx, Request{
		System: call.System,
		Messages: []Message{
			{Role: RoleUser, Content: call.User},
		},
		Schema:      call.Schema,
		MaxTokens:   maxTokens,
		Temperature: call.Temperature,
	})
	if err != nil {
		return nil, c.serviceError(ctx, err)
	}

	if resp == nil || len(bytes.TrimSpace(resp.Content)) == 0 {
		return nil, &ServiceError{Kind: KindEmpty, Cause: "the text-generation service returned an empty response"}
	}

	if !json.Valid(resp.Content) {
		return nil, &ServiceError{
			Kind:  KindInvalidJSON,
			Cause: "the text-generation service returned malformed JSON",
			Err:   &ErrInvalidResponse{Content: resp.Content, Err: errors.New("not valid JSON")},
		}
	}

	return resp.Content, nil
}

// serviceError maps provider errors onto ServiceError kinds. Context errors
// are checked first since providers wrap them in ErrProviderUnavailable.
func (c *Client) serviceError(ctx context.Context, err error) *ServiceError {
	var (
		rl      *ErrRateLimit
		inv     *ErrInvalidResponse
		empty   *ErrEmptyResponse
		maxTok  *ErrMaxTokensExceeded
		unavail *ErrProviderUnavailable
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		cause := "the text-generation service did not respond in time"
		if c.timeout > 0 {
			cause = fmt.Sprintf("the text-generation service did not respond within %s", c.timeout)
		}
		return &ServiceError{Kind: KindTimeout, Cause: cause, Err: err}
	case errors.Is(err, context.Canceled):
		return &ServiceError{Kind: KindCancelled, Cause: "the request was cancelled", Err: err}
	case errors.As(err, &rl):
		return &ServiceError{Kind: KindRateLimit, Cause: withDetail("the text-generation service is rate limiting requests", rl.Err), Err: err}
	case errors.As(err, &empty):
		return &ServiceError{Kind: KindEmpty, Cause: "the text-generation service returned an empty response", Err: err}
	case errors.As(err, &maxTok):
		return &ServiceError{Kind: KindTruncated, Cause: "the response was cut off before it was complete", Err: err}
	case errors.As(err, &inv):
		if len(inv.Content) > 0 && json.Valid(inv.Content) {
			return &ServiceError{Kind: KindSchema, Cause: withDetail("the response did not match the expected format", inv.Err), Err: err}
		}
		return &ServiceError{Kind: KindInvalidJSON, Cause: withDetail("the text-generation service returned malformed JSON", inv.Err), Err: err}
	case errors.As(err, &unavail):
		return &ServiceError{Kind: KindUnavailable, Cause: withDetail("the text-generation service is unavailable", unavail.Err), Err: err}
	default:
		return &ServiceError{Kind: KindTransport, Cause: withDetail("the text-generation service could not be reached", err), Err: err}
	}
}

func withDetail(msg string, err error) string {
	if err == nil {
		return msg
	}
	return msg + ": " + err.Error()
}
