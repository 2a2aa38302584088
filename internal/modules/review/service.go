package review

import (
	"context"
	"fmt"
	"time"

	"peerconnect/internal/domain"
)

type CreateReviewInput struct {
	RevieweeID int64  `json:"reviewee_id" binding:"required"`
	BookingID  *int64 `json:"booking_id"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
}

// Summary is a user's aggregate rating alongside the individual reviews.
type Summary struct {
	Average float64         `json:"average"`
	Count   int64           `json:"count"`
	Reviews []domain.Review `json:"reviews"`
}

type Service struct {
	reviews reviewRepo
	notifs  Notifier
	now     func() time.Time
}

func NewService(reviews reviewRepo, notifs Notifier, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{reviews: reviews, notifs: notifs, now: now}
}

// Create posts a review. Reviews are immutable and nothing de-duplicates
// them per booking; posting twice is two reviews.
func (s *Service) Create(ctx context.Context, reviewerID int64, in CreateReviewInput) (*domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrValidation
	}
	if in.RevieweeID == reviewerID {
		return nil, ErrSelfReview
	}

	rv := &domain.Review{
		ReviewerID: reviewerID,
		RevieweeID: in.RevieweeID,
		BookingID:  in.BookingID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		CreatedAt:  s.now(),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.Notify(ctx, rv.RevieweeID, domain.NotifyReviewPosted,
			fmt.Sprintf("You received a %d-star review", rv.Rating),
			map[string]any{"review_id": rv.ID, "reviewer_id": reviewerID})
	}
	return rv, nil
}

func (s *Service) ForUser(ctx context.Context, revieweeID int64) (*Summary, error) {
	reviews, err := s.reviews.ListByReviewee(ctx, revieweeID)
	if err != nil {
		return nil, err
	}
	avg, count, err := s.reviews.AverageForUser(ctx, revieweeID)
	if err != nil {
		return nil, err
	}
	return &Summary{Average: avg, Count: count, Reviews: reviews}, nil
}
