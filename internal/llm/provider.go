package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider answers without any text
var ErrEmptyResponse = errors.New("empty response from provider")

// Role values accepted in ChatMessage
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the conversation sent to a provider
type ChatMessage struct {
	Role    string
	Content string
}

// ChatRequest contains multi-turn chat parameters
type ChatRequest struct {
	Model     string
	MaxTokens int
	System    string
	Messages  []ChatMessage
}

// ChatResponse contains the generated reply
type ChatResponse struct {
	Text       string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Chat sends the whole conversation and returns the next assistant turn
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ChatClient is the narrow surface the conversation layer depends on
type ChatClient interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}
