package repository

import (
	"context"

	"gorm.io/gorm"

	"peerconnect/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) ListByReviewee(ctx context.Context, revieweeID int64) ([]domain.Review, error) {
	var reviews []domain.Review
	tx := r.db.WithContext(ctx).
		Where("reviewee_id = ?", revieweeID).
		Order("created_at desc").
		Find(&reviews)
	return reviews, tx.Error
}

// AverageForUser returns (0, 0, nil) for a user with no reviews.
func (r *ReviewRepository) AverageForUser(ctx context.Context, revieweeID int64) (avg float64, count int64, err error) {
	tx := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("reviewee_id = ?", revieweeID).
		Count(&count)
	if tx.Error != nil || count == 0 {
		return 0, count, tx.Error
	}
	tx = r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("reviewee_id = ?", revieweeID).
		Select("AVG(rating)").
		Scan(&avg)
	return avg, count, tx.Error
}
