package handler

import (
	"errors"
	"net/http"

	"github.com/Rrens/content-creator-bot/internal/api/middleware"
	"github.com/Rrens/content-creator-bot/internal/api/response"
	"github.com/Rrens/content-creator-bot/internal/domain"
	"github.com/Rrens/content-creator-bot/internal/security"
	"github.com/Rrens/content-creator-bot/internal/service"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles the manual display-name login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.ManualLogin
	if !decode(w, r, &input) {
		return
	}

	tokens, err := h.authService.LoginManual(r.Context(), input)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	response.OK(w, tokens)
}

// Telegram handles login from inside the Telegram mini-app
func (h *AuthHandler) Telegram(w http.ResponseWriter, r *http.Request) {
	var input domain.TelegramLogin
	if !decode(w, r, &input) {
		return
	}

	tokens, err := h.authService.LoginTelegram(r.Context(), input)
	switch {
	case errors.Is(err, service.ErrTelegramDisabled):
		response.NotImplemented(w, err.Error())
		return
	case errors.Is(err, security.ErrInitDataExpired), errors.Is(err, security.ErrInvalidInitData):
		log.Debug().Err(err).Msg("Rejected telegram init data")
		response.Unauthorized(w, err.Error())
		return
	case err != nil:
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, tokens)
}

// Refresh handles token refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if !decode(w, r, &input) {
		return
	}

	tokens, err := h.authService.Refresh(r.Context(), input.RefreshToken)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	response.OK(w, tokens)
}

// Me returns the current authenticated identity
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	response.OK(w, identity)
}
