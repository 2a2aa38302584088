package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"peerconnect/internal/domain"
	"peerconnect/internal/gateway"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) Create(ctx context.Context, s *domain.AvailabilitySlot) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, id int64) (*domain.AvailabilitySlot, error) {
	var s domain.AvailabilitySlot
	tx := r.db.WithContext(ctx).First(&s, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, gateway.ErrNotFound
		}
		return nil, tx.Error
	}
	return &s, nil
}

func (r *AvailabilityRepository) ListByUser(ctx context.Context, userID int64) ([]domain.AvailabilitySlot, error) {
	var slots []domain.AvailabilitySlot
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_of_week asc, start_time asc").
		Find(&slots)
	return slots, tx.Error
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.AvailabilitySlot{}, id).Error
}
