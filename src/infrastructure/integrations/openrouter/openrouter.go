// Package openrouter implements the assistant's CompletionClient
// against the OpenRouter chat completions endpoint (OpenAI-compatible
// wire format, bearer-token auth).
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"ragbot/src/core/assistant"
)

const (
	DefaultBaseURL     = "https://openrouter.ai/api/v1"
	DefaultModel       = "deepseek/deepseek-chat"
	DefaultMaxTokens   = 400
	DefaultTemperature = 0.8
	DefaultTimeout     = 20 * time.Second
)

// Config holds the completion endpoint settings. Zero values fall back
// to the defaults above.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// Client is a single-attempt completion client. Failures map onto the
// assistant's error taxonomy; the client never retries and never
// touches conversation history.
type Client struct {
	api         *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:         openai.NewClientWithConfig(apiCfg),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

// Complete sends one chat completion request and returns the answer
// text from the first choice.
func (c *Client) Complete(ctx context.Context, req assistant.Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("response has no choices: %w", assistant.ErrMalformed)
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("response has empty content: %w", assistant.ErrMalformed)
	}
	return answer, nil
}

// classify maps transport and API errors onto the assistant taxonomy.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%v: %w", err, assistant.ErrRateLimited)
		case apiErr.HTTPStatusCode >= 500:
			return fmt.Errorf("%v: %w", err, assistant.ErrServerError)
		default:
			return fmt.Errorf("%v: %w", err, assistant.ErrMalformed)
		}
	}
	// Anything else is a transport problem: timeout, DNS, refused.
	return fmt.Errorf("%v: %w", err, assistant.ErrUnavailable)
}
