// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package completion wraps the external text-completion backend behind a
// small client interface so the orchestrator and tests can supply stubs.
package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/pdiddy/outreach-engine/pkg/types"
)

// ErrInvalidArgument marks a caller mistake caught before any network call.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrBackend marks a completion backend that is unreachable, rejected the
// request, or returned no usable content.
var ErrBackend = errors.New("completion backend error")

// Client sends one prompt to a text-completion backend and returns the raw
// response text. A single request/response exchange per call; resilience is
// layered on via WithRetry.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// defaultTemperature matches the conservative sampling used for controlled
// public-facing text.
const defaultTemperature = 0.4

// OpenAIClient calls an OpenAI-compatible chat-completion API.
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAIClient builds a client from config. BaseURL, when set, points the
// client at any OpenAI-compatible endpoint; it is normalized to end in /v1.
// SDK-internal retries are disabled so the retry decorator owns that policy.
func NewOpenAIClient(cfg types.CompletionConfig) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if base := normalizeBaseURL(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}

	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: temperature,
	}
}

// Complete sends the prompt as a single system message and returns the first
// choice's content. An empty or whitespace-only prompt fails before the
// network call.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: empty prompt", ErrInvalidArgument)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%w: calling completion API: %v", ErrBackend, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrBackend)
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: empty completion content", ErrBackend)
	}
	return content, nil
}

// normalizeBaseURL trims trailing slashes and ensures the /v1 suffix the
// OpenAI-compatible wire format expects.
func normalizeBaseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return ""
	}
	if !strings.HasSuffix(base, "/v1") {
		base += "/v1"
	}
	return base
}
