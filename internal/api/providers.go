package api

import (
	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/Rrens/content-creator-bot/internal/llm"
	"github.com/Rrens/content-creator-bot/internal/llm/anthropic"
	"github.com/Rrens/content-creator-bot/internal/llm/deepseek"
	"github.com/Rrens/content-creator-bot/internal/llm/gemini"
	"github.com/Rrens/content-creator-bot/internal/llm/ollama"
	"github.com/Rrens/content-creator-bot/internal/llm/openai"
	"github.com/rs/zerolog/log"
)

// NewLLMRouter registers every provider that has credentials
func NewLLMRouter(cfg config.LLMConfig) *llm.Router {
	router := llm.NewRouter(cfg.DefaultProvider)

	log.Info().Str("default", cfg.DefaultProvider).Msg("Initializing LLM providers")

	if cfg.Anthropic.APIKey != "" {
		router.RegisterProvider(anthropic.NewProvider(cfg.Anthropic))
	}
	if cfg.OpenAI.APIKey != "" {
		router.RegisterProvider(openai.NewProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model))
	}
	if cfg.DeepSeek.APIKey != "" {
		router.RegisterProvider(deepseek.NewProvider(cfg.DeepSeek.APIKey, cfg.DeepSeek.Model))
	}
	if cfg.Gemini.APIKey != "" {
		router.RegisterProvider(gemini.NewProvider(cfg.Gemini))
	}
	if cfg.Ollama.Host != "" {
		log.Info().Str("host", cfg.Ollama.Host).Msg("Registering Ollama provider")
		router.RegisterProvider(ollama.NewProvider(cfg.Ollama.Host, cfg.Ollama.DefaultModel))
	}

	if _, err := router.GetProvider(""); err != nil {
		log.Warn().Err(err).Msg("Default LLM provider unavailable, chat turns will return the apology message")
	}

	return router
}
