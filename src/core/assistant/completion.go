package assistant

import (
	"context"
	"errors"
)

// Completion failure taxonomy. Implementations wrap one of these so the
// assistant can distinguish failure modes without depending on any
// provider SDK.
var (
	// ErrUnavailable covers network failures and timeouts.
	ErrUnavailable = errors.New("completion service unavailable")
	// ErrRateLimited is returned for HTTP 429 responses.
	ErrRateLimited = errors.New("completion service rate limited")
	// ErrServerError is returned for 5xx responses.
	ErrServerError = errors.New("completion service error")
	// ErrMalformed is returned when a response carries no usable answer.
	ErrMalformed = errors.New("malformed completion response")
)

// Message is one chat message in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a fully assembled completion request: one system message,
// a bounded slice of history, and the new user turn.
type Request struct {
	Messages []Message
}

// CompletionClient issues one completion call per invocation. No
// retries, no side effects: appending replies to history is the
// caller's job alone.
type CompletionClient interface {
	Complete(ctx context.Context, req Request) (string, error)
}
