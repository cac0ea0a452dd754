package handler

import (
	"errors"
	"net/http"

	"github.com/Rrens/content-creator-bot/internal/api/response"
	"github.com/Rrens/content-creator-bot/internal/content"
	"github.com/Rrens/content-creator-bot/internal/domain"
	"github.com/Rrens/content-creator-bot/internal/service"
)

// ConversationHandler runs dialogue turns and serves generated content
type ConversationHandler struct {
	sessions     *service.SessionStore
	conversation *service.Conversation
}

func NewConversationHandler(sessions *service.SessionStore, conversation *service.Conversation) *ConversationHandler {
	return &ConversationHandler{sessions: sessions, conversation: conversation}
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type generateRequest struct {
	Format string `json:"format" validate:"required,oneof=video image article"`
}

// SendMessage appends a user turn and returns the assistant reply.
// Blank content yields a skipped result rather than an error.
func (h *ConversationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var input sendMessageRequest
	if !decode(w, r, &input) {
		return
	}

	session, ok := loadOwnedSession(w, r, h.sessions)
	if !ok {
		return
	}

	result, err := h.conversation.SendUserMessage(r.Context(), session, input.Content)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, result)
}

// Generate asks for one of the three content formats
func (h *ConversationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var input generateRequest
	if !decode(w, r, &input) {
		return
	}

	session, ok := loadOwnedSession(w, r, h.sessions)
	if !ok {
		return
	}

	result, err := h.conversation.RequestFormattedContent(r.Context(), session, domain.ContentType(input.Format))
	if errors.Is(err, service.ErrInvalidFormat) {
		response.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, result)
}

// Content returns the classified latest reply of a session
func (h *ConversationHandler) Content(w http.ResponseWriter, r *http.Request) {
	session, ok := loadOwnedSession(w, r, h.sessions)
	if !ok {
		return
	}

	generated := h.conversation.LatestContent(session)
	if generated == nil {
		response.NotFound(w, "no generated content")
		return
	}

	response.OK(w, generated)
}

// Download serves the latest classified reply as a text attachment
func (h *ConversationHandler) Download(w http.ResponseWriter, r *http.Request) {
	session, ok := loadOwnedSession(w, r, h.sessions)
	if !ok {
		return
	}

	generated := h.conversation.LatestContent(session)
	if generated == nil {
		response.NotFound(w, "no generated content")
		return
	}

	response.Attachment(w, generated.Filename, generated.Text)
}

// Tools lists the publishing tool catalog for a content type
func Tools(w http.ResponseWriter, r *http.Request) {
	ct := domain.ContentType(r.URL.Query().Get("type"))
	if !ct.Valid() {
		response.BadRequest(w, "type must be one of: video image article")
		return
	}

	response.OK(w, map[string]any{
		"type":  ct,
		"intro": content.ToolsIntro(ct),
		"tools": content.ToolLinks(ct),
	})
}
