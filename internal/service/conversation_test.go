package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/Rrens/content-creator-bot/internal/domain"
	"github.com/Rrens/content-creator-bot/internal/llm"
	"github.com/Rrens/content-creator-bot/internal/storage"
	"github.com/Rrens/content-creator-bot/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testChatConfig = config.ChatConfig{
	Model:     "claude-sonnet-4-20250514",
	MaxTokens: 1000,
}

func newTestConversation(t *testing.T, chat llm.ChatClient) (*Conversation, *SessionStore, *domain.Session) {
	t.Helper()

	sessions := newTestSessionStore(memory.NewStore())
	session, err := sessions.CreateSession(context.Background(), "42")
	require.NoError(t, err)

	c := NewConversation(sessions, chat, testChatConfig)
	c.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	return c, sessions, session
}

func TestConversation_SendUserMessage(t *testing.T) {
	ctx := context.Background()
	chat := new(MockChat)
	c, sessions, session := newTestConversation(t, chat)

	chat.On("Chat", mock.Anything, mock.MatchedBy(func(req llm.ChatRequest) bool {
		return req.Model == testChatConfig.Model &&
			req.MaxTokens == 1000 &&
			req.System == llm.SystemPrompt &&
			len(req.Messages) == 2 &&
			req.Messages[0].Role == llm.RoleAssistant &&
			req.Messages[1] == llm.ChatMessage{Role: llm.RoleUser, Content: "coffee at home"}
	})).Return(&llm.ChatResponse{Text: "Who is your audience?"}, nil).Once()

	result, err := c.SendUserMessage(ctx, session, "coffee at home")
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.False(t, result.Failed)
	assert.Equal(t, "Who is your audience?", result.Reply)
	assert.Nil(t, result.Content)
	assert.False(t, result.Formats)

	require.Len(t, result.Session.Messages, 3)
	assert.Equal(t, domain.AssistantMessage("Who is your audience?"), result.Session.Messages[2])
	assert.Equal(t, "coffee at home", result.Session.Title)
	assert.Len(t, session.Messages, 1, "the caller's session is not mutated")

	stored, err := sessions.LoadSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Session, stored)

	chat.AssertExpectations(t)
}

func TestConversation_SendUserMessage_Classifies(t *testing.T) {
	chat := new(MockChat)
	c, _, session := newTestConversation(t, chat)

	chat.On("Chat", mock.Anything, mock.Anything).
		Return(&llm.ChatResponse{Text: "**Video Script**\nScene 1: pour-over"}, nil).Once()

	result, err := c.SendUserMessage(context.Background(), session, "make the video")
	require.NoError(t, err)

	require.NotNil(t, result.Content)
	assert.Equal(t, domain.ContentVideo, result.Content.Type)
	assert.Equal(t, "🎬 Video Script Ready", result.Content.Heading)
	assert.Equal(t, "content_1700000000000.txt", result.Content.Filename)
	assert.Len(t, result.Content.Tools, 4)
}

func TestConversation_SendUserMessage_BlankIsNoop(t *testing.T) {
	chat := new(MockChat)
	c, _, session := newTestConversation(t, chat)

	for _, text := range []string{"", "   ", "\n\t"} {
		result, err := c.SendUserMessage(context.Background(), session, text)
		require.NoError(t, err)
		assert.True(t, result.Skipped)
		assert.Len(t, result.Session.Messages, 1)
	}

	chat.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
}

func TestConversation_SendUserMessage_ChatFailure(t *testing.T) {
	ctx := context.Background()
	chat := new(MockChat)
	c, sessions, session := newTestConversation(t, chat)

	chat.On("Chat", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

	result, err := c.SendUserMessage(ctx, session, "hello")
	require.NoError(t, err)

	assert.True(t, result.Failed)
	assert.Equal(t, config.DefaultApology, result.Reply)
	assert.Nil(t, result.Content)
	require.Len(t, result.Session.Messages, len(session.Messages)+2)
	assert.Equal(t, domain.UserMessage("hello"), result.Session.Messages[1])
	assert.Equal(t, domain.AssistantMessage(config.DefaultApology), result.Session.Messages[2])

	stored, err := sessions.LoadSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 3)
}

func TestConversation_SendUserMessage_PersistFailureIsNotSurfaced(t *testing.T) {
	store := new(MockStore)
	store.On("Get", mock.Anything, "chat:42:s").Return("", storage.ErrNotFound)
	store.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	chat := new(MockChat)
	chat.On("Chat", mock.Anything, mock.Anything).Return(&llm.ChatResponse{Text: "ok"}, nil)

	c := NewConversation(newTestSessionStore(store), chat, testChatConfig)
	session := &domain.Session{ID: "chat:42:s", Messages: []domain.Message{domain.AssistantMessage("hi")}}

	result, err := c.SendUserMessage(context.Background(), session, "hello")
	require.NoError(t, err)
	assert.False(t, result.Failed)
	assert.Equal(t, "ok", result.Reply)
	assert.Len(t, result.Session.Messages, 3)
}

func TestConversation_ConcurrentTurnIsNoop(t *testing.T) {
	chat := newBlockingChat("first reply")
	c, _, session := newTestConversation(t, chat)

	var wg sync.WaitGroup
	var first *domain.TurnResult
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, _ = c.SendUserMessage(context.Background(), session, "first")
	}()

	<-chat.entered
	assert.True(t, c.IsBusy(session.ID))

	second, err := c.SendUserMessage(context.Background(), session, "second")
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Len(t, second.Session.Messages, 1)

	format, err := c.RequestFormattedContent(context.Background(), session, domain.ContentImage)
	require.NoError(t, err)
	assert.True(t, format.Skipped)

	close(chat.release)
	wg.Wait()

	require.NotNil(t, first)
	assert.False(t, first.Skipped)
	assert.Len(t, first.Session.Messages, 3)
	assert.False(t, c.IsBusy(session.ID))
}

func TestConversation_StaleCopyKeepsEarlierTurn(t *testing.T) {
	ctx := context.Background()
	chat := newBlockingChat("reply")
	c, sessions, session := newTestConversation(t, chat)

	stale := session.Clone()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.SendUserMessage(ctx, session, "turn A")
	}()

	<-chat.entered
	close(chat.release)
	<-done

	result, err := c.SendUserMessage(ctx, stale, "turn B")
	require.NoError(t, err)
	require.False(t, result.Skipped)

	stored, err := sessions.LoadSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Message{
		domain.AssistantMessage(config.DefaultGreeting),
		domain.UserMessage("turn A"),
		domain.AssistantMessage("reply"),
		domain.UserMessage("turn B"),
		domain.AssistantMessage("reply"),
	}, stored.Messages)
	assert.Equal(t, "turn A", stored.Title)
}

func TestConversation_DeletedSessionUsesCallerCopy(t *testing.T) {
	ctx := context.Background()
	chat := new(MockChat)
	c, sessions, session := newTestConversation(t, chat)

	chat.On("Chat", mock.Anything, mock.Anything).Return(&llm.ChatResponse{Text: "ok"}, nil).Once()
	require.NoError(t, sessions.DeleteSession(ctx, session.ID))

	result, err := c.SendUserMessage(ctx, session, "hello")
	require.NoError(t, err)
	assert.Len(t, result.Session.Messages, 3)
}

func TestConversation_RequestFormattedContent(t *testing.T) {
	tests := []struct {
		format domain.ContentType
		prompt string
	}{
		{domain.ContentVideo, "Please create a short video script based on our conversation."},
		{domain.ContentImage, "Please create a AI image description based on our conversation."},
		{domain.ContentArticle, "Please create a brief article based on our conversation."},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			chat := new(MockChat)
			c, _, session := newTestConversation(t, chat)

			chat.On("Chat", mock.Anything, mock.MatchedBy(func(req llm.ChatRequest) bool {
				last := req.Messages[len(req.Messages)-1]
				return last.Role == llm.RoleUser && last.Content == tt.prompt
			})).Return(&llm.ChatResponse{Text: "Here you go"}, nil).Once()

			result, err := c.RequestFormattedContent(context.Background(), session, tt.format)
			require.NoError(t, err)

			require.NotNil(t, result.Content)
			assert.Equal(t, tt.format, result.Content.Type)
			assert.Equal(t, "Here you go", result.Content.Text)
			chat.AssertExpectations(t)
		})
	}
}

func TestConversation_RequestFormattedContent_InvalidFormat(t *testing.T) {
	chat := new(MockChat)
	c, _, session := newTestConversation(t, chat)

	_, err := c.RequestFormattedContent(context.Background(), session, "podcast")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	chat.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
}

func TestFormatsAvailable(t *testing.T) {
	session := &domain.Session{}
	for i := 0; i < 4; i++ {
		session.Messages = append(session.Messages, domain.UserMessage("x"))
	}
	assert.False(t, FormatsAvailable(session))

	session.Messages = append(session.Messages, domain.AssistantMessage("y"))
	assert.True(t, FormatsAvailable(session))

	assert.False(t, FormatsAvailable(nil))
}

func TestConversation_LatestContent(t *testing.T) {
	c, _, _ := newTestConversation(t, new(MockChat))

	session := &domain.Session{Messages: []domain.Message{
		domain.AssistantMessage("hi"),
		domain.UserMessage("go"),
		domain.AssistantMessage(strings.Repeat("long ", 120)),
	}}
	got := c.LatestContent(session)
	require.NotNil(t, got)
	assert.Equal(t, domain.ContentArticle, got.Type)

	session.Messages = append(session.Messages, domain.UserMessage("again"), domain.AssistantMessage(config.DefaultApology))
	assert.Nil(t, c.LatestContent(session))

	assert.Nil(t, c.LatestContent(&domain.Session{}))
}

func TestConversation_OpenWorkspace(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessionStore(memory.NewStore())
	c := NewConversation(sessions, new(MockChat), testChatConfig)

	ws, err := c.OpenWorkspace(ctx, "7")
	require.NoError(t, err)
	require.Len(t, ws.Sessions, 1)
	assert.Equal(t, ws.Sessions[0], ws.Active)

	again, err := c.OpenWorkspace(ctx, "7")
	require.NoError(t, err)
	require.Len(t, again.Sessions, 1, "an existing session is reused")
	assert.Equal(t, ws.Active.ID, again.Active.ID)
}

func TestConversation_DeleteAndFallback(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessionStore(memory.NewStore())
	c := NewConversation(sessions, new(MockChat), testChatConfig)

	older, err := sessions.CreateSession(ctx, "7")
	require.NoError(t, err)
	newer, err := sessions.CreateSession(ctx, "7")
	require.NoError(t, err)

	ws, err := c.DeleteAndFallback(ctx, "7", newer.ID)
	require.NoError(t, err)
	require.Len(t, ws.Sessions, 1)
	assert.Equal(t, older.ID, ws.Active.ID)

	ws, err = c.DeleteAndFallback(ctx, "7", older.ID)
	require.NoError(t, err)
	require.Len(t, ws.Sessions, 1)
	assert.NotEqual(t, older.ID, ws.Active.ID, "a fresh session replaces the last one")
	assert.Len(t, ws.Active.Messages, 1)

	_, err = c.DeleteAndFallback(ctx, "8", ws.Active.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
