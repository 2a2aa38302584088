package review

import (
	"context"

	"peerconnect/internal/domain"
)

type reviewRepo interface {
	Create(ctx context.Context, rv *domain.Review) error
	ListByReviewee(ctx context.Context, revieweeID int64) ([]domain.Review, error)
	AverageForUser(ctx context.Context, revieweeID int64) (avg float64, count int64, err error)
}

// Notifier is implemented by the notification service.
type Notifier interface {
	Notify(ctx context.Context, userID int64, ntype, content string, data map[string]any) error
}
