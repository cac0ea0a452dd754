package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/Rrens/content-creator-bot/internal/domain"
	"github.com/Rrens/content-creator-bot/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultTitle is shown until the first user message arrives
	DefaultTitle = "New Conversation"

	// TitleMaxRunes is the length at which titles are cut and suffixed with "..."
	TitleMaxRunes = 50

	keyPrefix = "chat"
)

// SessionStore persists sessions as JSON records under a per-user key namespace
type SessionStore struct {
	store    storage.Store
	greeting string
	now      func() time.Time
	newID    func() (uuid.UUID, error)
}

// NewSessionStore creates a session store on top of a key-value backend
func NewSessionStore(store storage.Store, greeting string) *SessionStore {
	if greeting == "" {
		greeting = config.DefaultGreeting
	}
	return &SessionStore{
		store:    store,
		greeting: greeting,
		now:      time.Now,
		newID:    uuid.NewV7,
	}
}

// Namespace returns the key prefix that scopes one user's sessions
func Namespace(userID string) string {
	return keyPrefix + ":" + userID + ":"
}

// OwnsSession reports whether the session id lives directly in the user's namespace
func OwnsSession(userID, sessionID string) bool {
	ns := Namespace(userID)
	if !strings.HasPrefix(sessionID, ns) {
		return false
	}
	rest := sessionID[len(ns):]
	return rest != "" && !strings.Contains(rest, ":")
}

func validUserID(userID string) bool {
	return userID != "" && !strings.Contains(userID, ":")
}

// DeriveTitle builds a title from the first user message only
func DeriveTitle(messages []domain.Message) string {
	for _, m := range messages {
		if m.Role != domain.RoleUser {
			continue
		}
		if utf8.RuneCountInString(m.Content) <= TitleMaxRunes {
			return m.Content
		}
		return string([]rune(m.Content)[:TitleMaxRunes]) + "..."
	}
	return DefaultTitle
}

// ListSessions returns every readable session of a user, newest first.
// Records that fail to load or parse are skipped.
func (s *SessionStore) ListSessions(ctx context.Context, userID string) ([]*domain.Session, error) {
	if !validUserID(userID) {
		return nil, ErrInvalidUserID
	}

	keys, err := s.store.List(ctx, Namespace(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*domain.Session, 0, len(keys))
	for _, key := range keys {
		if !OwnsSession(userID, key) {
			continue
		}
		session, err := s.LoadSession(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("session_id", key).Msg("Skipping unreadable session")
			continue
		}
		sessions = append(sessions, session)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].ID > sessions[j].ID
	})

	return sessions, nil
}

// CreateSession seeds a new session with the assistant greeting and persists it
func (s *SessionStore) CreateSession(ctx context.Context, userID string) (*domain.Session, error) {
	if !validUserID(userID) {
		return nil, ErrInvalidUserID
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	session := &domain.Session{
		ID:        Namespace(userID) + id.String(),
		Title:     DefaultTitle,
		CreatedAt: s.timestamp(),
		Messages:  []domain.Message{domain.AssistantMessage(s.greeting)},
	}

	if err := s.write(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// LoadSession fetches one session. Missing and malformed records both
// yield ErrSessionNotFound.
func (s *SessionStore) LoadSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	raw, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if errors.Is(err, storage.ErrCorrupt) {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("Unreadable session record")
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		log.Debug().Err(err).Str("session_id", sessionID).Msg("Malformed session record")
		return nil, ErrSessionNotFound
	}
	if session.ID == "" {
		session.ID = sessionID
	}
	if session.Messages == nil {
		session.Messages = []domain.Message{}
	}

	return &session, nil
}

// SaveSession recomputes the title, stamps updatedAt and overwrites the record
func (s *SessionStore) SaveSession(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return errors.New("session has no id")
	}

	session.Title = DeriveTitle(session.Messages)
	now := s.timestamp()
	session.UpdatedAt = &now

	return s.write(ctx, session)
}

// DeleteSession removes a session. Deleting a missing id is not an error.
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) write(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.store.Set(ctx, session.ID, string(data)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SessionStore) timestamp() time.Time {
	return s.now().UTC().Round(0)
}
