package chat

import (
	"context"

	"peerconnect/internal/domain"
	"peerconnect/internal/repository"
)

type messageRepo interface {
	Create(ctx context.Context, m *domain.Message) error
	Conversation(ctx context.Context, a, b int64) ([]domain.Message, error)
	MarkRead(ctx context.Context, readerID, senderID int64) (int, error)
	ListPartners(ctx context.Context, userID int64) ([]repository.Partner, error)
}

// Notifier is implemented by the notification service.
type Notifier interface {
	Notify(ctx context.Context, userID int64, ntype, content string, data map[string]any) error
}
