// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package completion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/outreach-engine/pkg/types"
)

func TestCompleteRejectsEmptyPromptBeforeNetwork(t *testing.T) {
	// BaseURL points nowhere routable; the pre-flight check must fire first.
	client := NewOpenAIClient(types.CompletionConfig{
		AIConfig: types.AIConfig{APIKey: "test-key", BaseURL: "http://127.0.0.1:1"},
	})

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := client.Complete(context.Background(), prompt)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestCompleteReportsBackendError(t *testing.T) {
	client := NewOpenAIClient(types.CompletionConfig{
		AIConfig: types.AIConfig{APIKey: "test-key", BaseURL: "http://127.0.0.1:1"},
	})

	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackend)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"https://llm.example.com", "https://llm.example.com/v1"},
		{"https://llm.example.com/", "https://llm.example.com/v1"},
		{"https://llm.example.com/v1", "https://llm.example.com/v1"},
		{"https://llm.example.com/v1/", "https://llm.example.com/v1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeBaseURL(tt.in), "input %q", tt.in)
	}
}

func TestNewOpenAIClientDefaults(t *testing.T) {
	client := NewOpenAIClient(types.CompletionConfig{})
	assert.Equal(t, "gpt-4o-mini", client.model)
	assert.Equal(t, defaultTemperature, client.temperature)
}
