package report

import (
	"context"

	"peerconnect/internal/domain"
)

type reportRepo interface {
	Create(ctx context.Context, rep *domain.Report) error
	GetByID(ctx context.Context, id int64) (*domain.Report, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReportStatus) error
	ListByStatus(ctx context.Context, status domain.ReportStatus) ([]domain.Report, error)
}
