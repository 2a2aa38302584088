package chat

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"peerconnect/internal/cache"
	"peerconnect/internal/domain"
	"peerconnect/internal/repository"
)

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockMessageRepo) Conversation(ctx context.Context, a, b int64) ([]domain.Message, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, readerID, senderID int64) (int, error) {
	args := m.Called(ctx, readerID, senderID)
	return args.Int(0), args.Error(1)
}

func (m *mockMessageRepo) ListPartners(ctx context.Context, userID int64) ([]repository.Partner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Partner), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, userID int64, ntype, content string, data map[string]any) error {
	args := m.Called(ctx, userID, ntype, content, data)
	return args.Error(0)
}

func newTestCache() *cache.Cache {
	return cache.New(cache.NewMemStore(), zap.NewNop(), nil)
}

func TestConversationKey_DirectionIndependent(t *testing.T) {
	assert.Equal(t, conversationKey(7, 12), conversationKey(12, 7))
	assert.Equal(t, "conversation:7:12", conversationKey(12, 7))
}

func TestService_Send(t *testing.T) {
	t.Run("empty content rejected", func(t *testing.T) {
		svc := NewService(new(mockMessageRepo), newTestCache(), nil, nil)
		_, err := svc.Send(context.Background(), 7, 12, "   ")
		assert.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("self message rejected", func(t *testing.T) {
		svc := NewService(new(mockMessageRepo), newTestCache(), nil, nil)
		_, err := svc.Send(context.Background(), 7, 7, "hi")
		assert.ErrorIs(t, err, ErrSelfMessage)
	})

	t.Run("success notifies receiver", func(t *testing.T) {
		repo := new(mockMessageRepo)
		notifs := new(mockNotifier)
		svc := NewService(repo, newTestCache(), notifs, nil)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(msg *domain.Message) bool {
			return msg.SenderID == 7 && msg.ReceiverID == 12 && msg.Content == "hi there"
		})).Return(nil)
		notifs.On("Notify", mock.Anything, int64(12), domain.NotifyNewMessage, "hi there", mock.Anything).Return(nil)

		m, err := svc.Send(context.Background(), 7, 12, "  hi there  ")
		assert.NoError(t, err)
		assert.Equal(t, "hi there", m.Content)
		notifs.AssertExpectations(t)
	})

	t.Run("preview truncates on a rune boundary", func(t *testing.T) {
		repo := new(mockMessageRepo)
		notifs := new(mockNotifier)
		svc := NewService(repo, newTestCache(), notifs, nil)

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		notifs.On("Notify", mock.Anything, int64(12), domain.NotifyNewMessage,
			mock.MatchedBy(func(preview string) bool {
				return preview == strings.Repeat("é", 80) && utf8.ValidString(preview)
			}), mock.Anything).Return(nil)

		_, err := svc.Send(context.Background(), 7, 12, strings.Repeat("é", 100))
		assert.NoError(t, err)
		notifs.AssertExpectations(t)
	})
}

func TestService_Conversation_CachesWithinTTL(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := NewService(repo, newTestCache(), nil, nil)

	msgs := []domain.Message{
		{ID: 1, SenderID: 7, ReceiverID: 12, Content: "a", CreatedAt: time.Unix(100, 0).UTC()},
		{ID: 2, SenderID: 12, ReceiverID: 7, Content: "b", CreatedAt: time.Unix(200, 0).UTC()},
	}
	repo.On("Conversation", mock.Anything, int64(7), int64(12)).Return(msgs, nil).Once()

	first, err := svc.Conversation(context.Background(), 7, 12)
	assert.NoError(t, err)
	assert.Len(t, first, 2)

	// Second read within the TTL must not hit the repository again.
	second, err := svc.Conversation(context.Background(), 7, 12)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "Conversation", 1)
}

func TestService_Send_InvalidatesConversationCache(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := NewService(repo, newTestCache(), nil, nil)

	msgs := []domain.Message{{ID: 1, SenderID: 7, ReceiverID: 12, Content: "a", CreatedAt: time.Unix(100, 0).UTC()}}
	repo.On("Conversation", mock.Anything, int64(7), int64(12)).Return(msgs, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Conversation(context.Background(), 7, 12)
	assert.NoError(t, err)

	_, err = svc.Send(context.Background(), 7, 12, "new message")
	assert.NoError(t, err)

	_, err = svc.Conversation(context.Background(), 7, 12)
	assert.NoError(t, err)
	repo.AssertNumberOfCalls(t, "Conversation", 2)
}

func TestService_MarkRead(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := NewService(repo, newTestCache(), nil, nil)

	repo.On("MarkRead", mock.Anything, int64(7), int64(12)).Return(3, nil)

	n, err := svc.MarkRead(context.Background(), 7, 12)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
}
