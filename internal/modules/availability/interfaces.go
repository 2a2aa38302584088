package availability

import (
	"context"

	"peerconnect/internal/domain"
)

type slotRepo interface {
	Create(ctx context.Context, s *domain.AvailabilitySlot) error
	GetByID(ctx context.Context, id int64) (*domain.AvailabilitySlot, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.AvailabilitySlot, error)
	Delete(ctx context.Context, id int64) error
}
