package service

import (
	"context"
	"sync"

	"github.com/Rrens/content-creator-bot/internal/llm"
	"github.com/Rrens/content-creator-bot/internal/storage"
	"github.com/stretchr/testify/mock"
)

// MockStore mocks the storage.Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStore) List(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

var _ storage.Store = (*MockStore)(nil)

// MockChat mocks the llm.ChatClient interface
type MockChat struct {
	mock.Mock
}

func (m *MockChat) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.ChatResponse), args.Error(1)
}

// blockingChat holds the first turn open until release is closed. Later
// calls pass straight through once release is closed.
type blockingChat struct {
	entered chan struct{}
	release chan struct{}
	reply   string
	once    sync.Once
}

func newBlockingChat(reply string) *blockingChat {
	return &blockingChat{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		reply:   reply,
	}
}

func (b *blockingChat) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	b.once.Do(func() { close(b.entered) })
	<-b.release
	return &llm.ChatResponse{Text: b.reply}, nil
}
