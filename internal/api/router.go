package api

import (
	"net/http"

	"github.com/Rrens/content-creator-bot/internal/api/handler"
	customMiddleware "github.com/Rrens/content-creator-bot/internal/api/middleware"
	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/Rrens/content-creator-bot/internal/llm"
	"github.com/Rrens/content-creator-bot/internal/security"
	"github.com/Rrens/content-creator-bot/internal/service"
	"github.com/Rrens/content-creator-bot/internal/storage"
	"github.com/Rrens/content-creator-bot/internal/telegram"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// Dependencies are the long-lived components the router wires into handlers
type Dependencies struct {
	Store   storage.Store
	LLM     *llm.Router
	Limiter customMiddleware.Limiter
	Bot     *telegram.Bot
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.Server.MiddlewareTimeout > 0 {
		r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))
	}

	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	var verifier *security.TelegramVerifier
	if cfg.Telegram.BotToken != "" {
		verifier = security.NewTelegramVerifier(cfg.Telegram.BotToken, cfg.Telegram.InitDataMaxAge)
	} else {
		log.Warn().Msg("Telegram bot token is empty, mini-app login disabled")
	}

	// Initialize services
	sessions := service.NewSessionStore(deps.Store, cfg.Chat.Greeting)
	conversation := service.NewConversation(sessions, deps.LLM, cfg.Chat)
	authService := service.NewAuthService(jwtManager, verifier)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	sessionHandler := handler.NewSessionHandler(sessions, conversation)
	conversationHandler := handler.NewConversationHandler(sessions, conversation)

	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(deps.Limiter)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(deps.Store))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/telegram", authHandler.Telegram)
			r.Post("/refresh", authHandler.Refresh)
		})

		switch {
		case deps.Bot == nil || !deps.Bot.Configured():
		case deps.Bot.Enabled():
			r.Post("/telegram/webhook", handler.TelegramWebhook(deps.Bot))
		default:
			log.Warn().Msg("telegram.webhook_secret is empty, webhook not mounted")
		}

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Get("/me", authHandler.Me)
			r.Get("/llm-providers", handler.ListLLMProviders(deps.LLM))
			r.Get("/tools", handler.Tools)

			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", sessionHandler.List)
				r.Post("/", sessionHandler.Create)

				r.Route("/{sessionID}", func(r chi.Router) {
					r.Get("/", sessionHandler.Get)
					r.Delete("/", sessionHandler.Delete)

					r.Post("/messages", conversationHandler.SendMessage)
					r.Post("/generate", conversationHandler.Generate)
					r.Get("/content", conversationHandler.Content)
					r.Get("/content/download", conversationHandler.Download)
				})
			})
		})
	})

	return r
}
