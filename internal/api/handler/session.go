package handler

import (
	"errors"
	"net/http"

	"github.com/Rrens/content-creator-bot/internal/api/middleware"
	"github.com/Rrens/content-creator-bot/internal/api/response"
	"github.com/Rrens/content-creator-bot/internal/domain"
	"github.com/Rrens/content-creator-bot/internal/service"
	"github.com/rs/zerolog/log"
)

type SessionHandler struct {
	sessions     *service.SessionStore
	conversation *service.Conversation
}

func NewSessionHandler(sessions *service.SessionStore, conversation *service.Conversation) *SessionHandler {
	return &SessionHandler{sessions: sessions, conversation: conversation}
}

type workspaceView struct {
	Sessions         []domain.SessionSummary `json:"sessions"`
	Active           *domain.Session         `json:"active"`
	FormatsAvailable bool                    `json:"formats_available"`
}

type sessionView struct {
	Session          *domain.Session          `json:"session"`
	FormatsAvailable bool                     `json:"formats_available"`
	Content          *domain.GeneratedContent `json:"content,omitempty"`
}

func newWorkspaceView(ws *service.Workspace) workspaceView {
	summaries := make([]domain.SessionSummary, 0, len(ws.Sessions))
	for _, s := range ws.Sessions {
		summaries = append(summaries, s.Summary())
	}
	return workspaceView{
		Sessions:         summaries,
		Active:           ws.Active,
		FormatsAvailable: service.FormatsAvailable(ws.Active),
	}
}

// List returns the caller's sessions and the one to show, creating a first session if needed
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	ws, err := h.conversation.OpenWorkspace(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to open workspace")
		response.InternalError(w, "failed to list sessions")
		return
	}

	response.OK(w, newWorkspaceView(ws))
}

// Create starts a new session
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	session, err := h.sessions.CreateSession(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create session")
		response.InternalError(w, "failed to create session")
		return
	}

	response.Created(w, sessionView{Session: session})
}

// Get returns one session with its latest generated content
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := loadOwnedSession(w, r, h.sessions)
	if !ok {
		return
	}

	response.OK(w, sessionView{
		Session:          session,
		FormatsAvailable: service.FormatsAvailable(session),
		Content:          h.conversation.LatestContent(session),
	})
}

// Delete removes a session and returns the workspace to show next.
// Deleting an already removed session succeeds.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := ownedSessionID(w, r)
	if !ok {
		return
	}

	ws, err := h.conversation.DeleteAndFallback(r.Context(), userID, sessionID)
	if errors.Is(err, service.ErrForbidden) {
		response.NotFound(w, "session not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to delete session")
		response.InternalError(w, "failed to delete session")
		return
	}

	response.OK(w, newWorkspaceView(ws))
}
