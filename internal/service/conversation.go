package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/Rrens/content-creator-bot/internal/content"
	"github.com/Rrens/content-creator-bot/internal/domain"
	"github.com/Rrens/content-creator-bot/internal/llm"
	"github.com/rs/zerolog/log"
)

// FormatsThreshold is the message count above which explicit format requests are offered
const FormatsThreshold = 4

// Conversation drives dialogue turns for sessions.
// At most one turn per session is in flight; overlapping calls are skipped.
type Conversation struct {
	sessions  *SessionStore
	chat      llm.ChatClient
	model     string
	maxTokens int
	apology   string
	now       func() time.Time

	mu   sync.Mutex
	busy map[string]struct{}
}

// NewConversation creates a conversation controller
func NewConversation(sessions *SessionStore, chat llm.ChatClient, cfg config.ChatConfig) *Conversation {
	apology := cfg.Apology
	if apology == "" {
		apology = config.DefaultApology
	}
	return &Conversation{
		sessions:  sessions,
		chat:      chat,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		apology:   apology,
		now:       time.Now,
		busy:      make(map[string]struct{}),
	}
}

// Workspace is a user's session list plus the session currently shown
type Workspace struct {
	Sessions []*domain.Session
	Active   *domain.Session
}

// SendUserMessage runs one turn with free-text user input.
// Blank input or a turn already running for the session is a no-op.
func (c *Conversation) SendUserMessage(ctx context.Context, session *domain.Session, text string) (*domain.TurnResult, error) {
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if strings.TrimSpace(text) == "" {
		return &domain.TurnResult{Session: session, Skipped: true, Formats: FormatsAvailable(session)}, nil
	}
	return c.turn(ctx, session, text, domain.ContentNone), nil
}

// RequestFormattedContent runs a turn that asks for a specific content format
func (c *Conversation) RequestFormattedContent(ctx context.Context, session *domain.Session, format domain.ContentType) (*domain.TurnResult, error) {
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
	return c.turn(ctx, session, content.FormatRequest(format), format), nil
}

// IsBusy reports whether a turn is currently running for the session
func (c *Conversation) IsBusy(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.busy[sessionID]
	return ok
}

func (c *Conversation) acquire(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.busy[sessionID]; ok {
		return false
	}
	c.busy[sessionID] = struct{}{}
	return true
}

func (c *Conversation) release(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.busy, sessionID)
}

func (c *Conversation) turn(ctx context.Context, session *domain.Session, text string, requested domain.ContentType) *domain.TurnResult {
	if !c.acquire(session.ID) {
		log.Debug().Str("session_id", session.ID).Msg("Turn already in flight, skipping")
		return &domain.TurnResult{Session: session, Skipped: true, Formats: FormatsAvailable(session)}
	}
	defer c.release(session.ID)

	next := c.latest(ctx, session).Clone()
	next.Messages = append(next.Messages, domain.UserMessage(text))

	reply, failed := c.ask(ctx, next)
	next.Messages = append(next.Messages, domain.AssistantMessage(reply))

	// a failed write does not fail the turn
	if err := c.sessions.SaveSession(context.WithoutCancel(ctx), next); err != nil {
		log.Error().Err(err).Str("session_id", next.ID).Msg("Failed to persist session")
	}

	result := &domain.TurnResult{
		Session: next,
		Reply:   reply,
		Failed:  failed,
		Formats: FormatsAvailable(next),
	}
	if !failed {
		ct := requested
		if ct == domain.ContentNone {
			ct = content.Classify(reply)
		}
		result.Content = content.Build(ct, reply, c.now())
	}
	return result
}

// latest rereads the stored session once the busy flag is held, so a copy the
// caller loaded before an earlier turn finished cannot overwrite that turn.
func (c *Conversation) latest(ctx context.Context, session *domain.Session) *domain.Session {
	stored, err := c.sessions.LoadSession(ctx, session.ID)
	switch {
	case err == nil:
		return stored
	case errors.Is(err, ErrSessionNotFound):
		return session
	default:
		log.Warn().Err(err).Str("session_id", session.ID).Msg("Failed to reload session, using caller copy")
		return session
	}
}

func (c *Conversation) ask(ctx context.Context, session *domain.Session) (string, bool) {
	req := llm.ChatRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    llm.SystemPrompt,
		Messages:  make([]llm.ChatMessage, 0, len(session.Messages)),
	}
	for _, m := range session.Messages {
		req.Messages = append(req.Messages, llm.ChatMessage{Role: string(m.Role), Content: m.Content})
	}

	resp, err := c.chat.Chat(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("session_id", session.ID).Msg("Chat request failed")
		return c.apology, true
	}

	log.Info().
		Str("session_id", session.ID).
		Str("model", resp.Model).
		Int("tokens", resp.TokensUsed).
		Int64("latency_ms", resp.LatencyMs).
		Msg("Chat turn completed")

	return resp.Text, false
}

// FormatsAvailable reports whether explicit format buttons should be offered
func FormatsAvailable(session *domain.Session) bool {
	return session != nil && len(session.Messages) > FormatsThreshold
}

// LatestContent classifies the most recent assistant reply of a session
func (c *Conversation) LatestContent(session *domain.Session) *domain.GeneratedContent {
	msg, ok := session.LastAssistantMessage()
	if !ok || msg.Content == c.apology {
		return nil
	}
	return content.Build(content.Classify(msg.Content), msg.Content, c.now())
}

// OpenWorkspace lists a user's sessions, creating a first one when there are none
func (c *Conversation) OpenWorkspace(ctx context.Context, userID string) (*Workspace, error) {
	sessions, err := c.sessions.ListSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(sessions) == 0 {
		session, err := c.sessions.CreateSession(ctx, userID)
		if err != nil {
			return nil, err
		}
		sessions = []*domain.Session{session}
	}

	return &Workspace{Sessions: sessions, Active: sessions[0]}, nil
}

// DeleteAndFallback deletes a session and returns the session to show next
func (c *Conversation) DeleteAndFallback(ctx context.Context, userID, sessionID string) (*Workspace, error) {
	if !OwnsSession(userID, sessionID) {
		return nil, ErrForbidden
	}
	if c.IsBusy(sessionID) {
		log.Warn().Str("session_id", sessionID).Msg("Deleting session with a turn in flight")
	}

	if err := c.sessions.DeleteSession(ctx, sessionID); err != nil {
		return nil, err
	}

	return c.OpenWorkspace(ctx, userID)
}
