package deepseek

import (
	"github.com/Rrens/content-creator-bot/internal/llm/openai"
)

const baseURL = "https://api.deepseek.com/v1"

// NewProvider creates a DeepSeek provider on its OpenAI-compatible endpoint
func NewProvider(apiKey, defaultModel string) *openai.Provider {
	if defaultModel == "" {
		defaultModel = "deepseek-chat"
	}
	return openai.NewCompatibleProvider("deepseek", baseURL, apiKey, defaultModel,
		[]string{"deepseek-chat", "deepseek-reasoner"})
}
