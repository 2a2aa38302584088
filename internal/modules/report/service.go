package report

import (
	"context"
	"errors"
	"strings"
	"time"

	"peerconnect/internal/domain"
	"peerconnect/internal/gateway"
)

type CreateReportInput struct {
	TargetType string `json:"target_type" binding:"required"`
	TargetID   int64  `json:"target_id" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

type Service struct {
	reports reportRepo
	now     func() time.Time
}

func NewService(reports reportRepo, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{reports: reports, now: now}
}

func (s *Service) Create(ctx context.Context, reporterID int64, in CreateReportInput) (*domain.Report, error) {
	target := domain.ReportTarget(in.TargetType)
	switch target {
	case domain.ReportTargetMessage, domain.ReportTargetRequest, domain.ReportTargetUser:
	default:
		return nil, ErrValidation
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, ErrValidation
	}

	rep := &domain.Report{
		ReporterID: reporterID,
		TargetType: target,
		TargetID:   in.TargetID,
		Reason:     strings.TrimSpace(in.Reason),
		Status:     domain.ReportPending,
		CreatedAt:  s.now(),
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// Queue lists reports in a given status for moderators, oldest first.
func (s *Service) Queue(ctx context.Context, status string) ([]domain.Report, error) {
	st := domain.ReportStatus(status)
	if status == "" {
		st = domain.ReportPending
	}
	switch st {
	case domain.ReportPending, domain.ReportReviewed, domain.ReportResolved:
	default:
		return nil, ErrInvalidStatus
	}
	return s.reports.ListByStatus(ctx, st)
}

// canAdvance enforces the one-way moderation pipeline: pending -> reviewed
// -> resolved, with reviewed skippable. Resolved is terminal.
func canAdvance(from, to domain.ReportStatus) bool {
	switch from {
	case domain.ReportPending:
		return to == domain.ReportReviewed || to == domain.ReportResolved
	case domain.ReportReviewed:
		return to == domain.ReportResolved
	default:
		return false
	}
}

// SetStatus advances a report through the moderation pipeline.
func (s *Service) SetStatus(ctx context.Context, id int64, status string) (*domain.Report, error) {
	st := domain.ReportStatus(status)
	switch st {
	case domain.ReportReviewed, domain.ReportResolved:
	default:
		return nil, ErrInvalidStatus
	}

	rep, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !canAdvance(rep.Status, st) {
		return nil, ErrInvalidStatus
	}

	if err := s.reports.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}
	return s.reports.GetByID(ctx, id)
}
