package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"peerconnect/internal/domain"
	"peerconnect/internal/gateway"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var p domain.Profile
	tx := r.db.WithContext(ctx).First(&p, "user_id = ?", userID)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, gateway.ErrNotFound
		}
		return nil, tx.Error
	}
	return &p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProfileRepository) SetPushToken(ctx context.Context, userID int64, token string) error {
	return r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("user_id = ?", userID).
		Update("push_token", token).Error
}

func (r *ProfileRepository) SetVerified(ctx context.Context, userID int64, verified bool) error {
	return r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("user_id = ?", userID).
		Update("verified", verified).Error
}
