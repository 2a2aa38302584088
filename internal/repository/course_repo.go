package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"peerconnect/internal/domain"
	"peerconnect/internal/gateway"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	tx := r.db.WithContext(ctx).Order("code asc").Find(&courses)
	return courses, tx.Error
}

func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	var c domain.Course
	tx := r.db.WithContext(ctx).First(&c, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, gateway.ErrNotFound
		}
		return nil, tx.Error
	}
	return &c, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	return r.db.WithContext(ctx).Create(c).Error
}
