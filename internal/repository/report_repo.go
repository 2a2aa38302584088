package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"peerconnect/internal/domain"
	"peerconnect/internal/gateway"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	var rep domain.Report
	tx := r.db.WithContext(ctx).First(&rep, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, gateway.ErrNotFound
		}
		return nil, tx.Error
	}
	return &rep, nil
}

func (r *ReportRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReportStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Report{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *ReportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus) ([]domain.Report, error) {
	var reports []domain.Report
	tx := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at asc").
		Find(&reports)
	return reports, tx.Error
}
