package availability

import (
	"context"
	"errors"
	"regexp"

	"peerconnect/internal/domain"
	"peerconnect/internal/gateway"
)

var timeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type CreateSlotInput struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type Service struct {
	slots slotRepo
}

func NewService(slots slotRepo) *Service {
	return &Service{slots: slots}
}

// Create adds a weekly slot. Times are "HH:MM" strings compared
// lexicographically, which orders correctly for zero-padded 24h times.
func (s *Service) Create(ctx context.Context, userID int64, in CreateSlotInput) (*domain.AvailabilitySlot, error) {
	if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
		return nil, ErrValidation
	}
	if !timeRe.MatchString(in.StartTime) || !timeRe.MatchString(in.EndTime) {
		return nil, ErrValidation
	}
	if in.StartTime >= in.EndTime {
		return nil, ErrValidation
	}

	existing, err := s.slots.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, slot := range existing {
		if slot.DayOfWeek == in.DayOfWeek && in.StartTime < slot.EndTime && slot.StartTime < in.EndTime {
			return nil, ErrOverlap
		}
	}

	slot := &domain.AvailabilitySlot{
		UserID:    userID,
		DayOfWeek: in.DayOfWeek,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.AvailabilitySlot, error) {
	return s.slots.ListByUser(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if slot.UserID != userID {
		return ErrForbidden
	}
	return s.slots.Delete(ctx, id)
}
