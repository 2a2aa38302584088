package request

import (
	"context"

	"peerconnect/internal/domain"
	"peerconnect/internal/repository"
)

type requestRepo interface {
	Create(ctx context.Context, req *domain.HelpRequest) error
	GetByID(ctx context.Context, id int64) (*domain.HelpRequest, error)
	List(ctx context.Context, f repository.RequestFilter) ([]domain.HelpRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.HelpRequest, error)
	Update(ctx context.Context, req *domain.HelpRequest) error
	Delete(ctx context.Context, id int64) error
}

// Notifier is implemented by the notification service.
type Notifier interface {
	Notify(ctx context.Context, userID int64, ntype, content string, data map[string]any) error
}
