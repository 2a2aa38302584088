package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"peerconnect/internal/domain"
	"peerconnect/internal/feed"
	"peerconnect/internal/gateway"
)

// RequestFilter narrows the public browse listing. Zero values mean "any".
type RequestFilter struct {
	CourseID int64
	Status   domain.RequestStatus
	Tag      string
	Search   string
	Limit    int
	Offset   int
}

type RequestRepository struct {
	db     *gorm.DB
	broker *feed.Broker
}

func NewRequestRepository(db *gorm.DB, broker *feed.Broker) *RequestRepository {
	return &RequestRepository{db: db, broker: broker}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.HelpRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return err
	}
	r.publish(feed.Insert, req)
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.HelpRequest, error) {
	var req domain.HelpRequest
	tx := r.db.WithContext(ctx).First(&req, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, gateway.ErrNotFound
		}
		return nil, tx.Error
	}
	return &req, nil
}

func (r *RequestRepository) List(ctx context.Context, f RequestFilter) ([]domain.HelpRequest, error) {
	q := r.db.WithContext(ctx).Model(&domain.HelpRequest{})
	if f.CourseID != 0 {
		q = q.Where("course_id = ?", f.CourseID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Tag != "" {
		// Tags are stored as a JSON array; match on the quoted element.
		q = q.Where("tags LIKE ?", "%\""+f.Tag+"\"%")
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var reqs []domain.HelpRequest
	tx := q.Order("created_at desc").Find(&reqs)
	return reqs, tx.Error
}

func (r *RequestRepository) ListByUser(ctx context.Context, userID int64) ([]domain.HelpRequest, error) {
	var reqs []domain.HelpRequest
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&reqs)
	return reqs, tx.Error
}

func (r *RequestRepository) Update(ctx context.Context, req *domain.HelpRequest) error {
	if err := r.db.WithContext(ctx).Save(req).Error; err != nil {
		return err
	}
	r.publish(feed.Update, req)
	return nil
}

func (r *RequestRepository) Delete(ctx context.Context, id int64) error {
	req, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&domain.HelpRequest{}, id).Error; err != nil {
		return err
	}
	r.publish(feed.Delete, req)
	return nil
}

func (r *RequestRepository) publish(t feed.EventType, req *domain.HelpRequest) {
	if r.broker != nil {
		r.broker.Publish(feed.Event{Type: t, Collection: "help_requests", Row: *req})
	}
}
