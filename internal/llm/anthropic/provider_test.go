package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/Rrens/content-creator-bot/internal/llm"
	"github.com/Rrens/content-creator-bot/internal/llm/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Chat(t *testing.T) {
	var got map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"model": "claude-sonnet-4-20250514",
			"content": [
				{"type": "text", "text": "Who is your audience?"},
				{"type": "tool_use", "id": "x"},
				{"type": "text", "text": "And the tone?"}
			],
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	p := anthropic.NewProvider(config.AnthropicConfig{APIKey: "test-key", BaseURL: srv.URL})

	resp, err := p.Chat(context.Background(), llm.ChatRequest{
		MaxTokens: 1000,
		System:    llm.SystemPrompt,
		Messages: []llm.ChatMessage{
			{Role: llm.RoleUser, Content: "coffee"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Who is your audience?\nAnd the tone?", resp.Text)
	assert.Equal(t, 15, resp.TokensUsed)
	assert.Equal(t, "claude-sonnet-4-20250514", got["model"])
	assert.EqualValues(t, 1000, got["max_tokens"])
	assert.Equal(t, llm.SystemPrompt, got["system"])

	msgs := got["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, map[string]any{"role": "user", "content": "coffee"}, msgs[0])
}

func TestProvider_Chat_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		is     error
	}{
		{"http error", http.StatusTooManyRequests, `{"error":{"type":"rate_limit_error","message":"slow down"}}`, nil},
		{"malformed body", http.StatusOK, `not json`, nil},
		{"no text segments", http.StatusOK, `{"content":[{"type":"tool_use"}]}`, llm.ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := anthropic.NewProvider(config.AnthropicConfig{APIKey: "k", BaseURL: srv.URL})
			_, err := p.Chat(context.Background(), llm.ChatRequest{MaxTokens: 10})
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestProvider_IsConfigured(t *testing.T) {
	assert.False(t, anthropic.NewProvider(config.AnthropicConfig{}).IsConfigured())
	assert.True(t, anthropic.NewProvider(config.AnthropicConfig{APIKey: "k"}).IsConfigured())
}
