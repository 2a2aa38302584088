package repository

import (
	"context"

	"gorm.io/gorm"

	"peerconnect/internal/domain"
	"peerconnect/internal/feed"
)

type NotificationRepository struct {
	db     *gorm.DB
	broker *feed.Broker
}

func NewNotificationRepository(db *gorm.DB, broker *feed.Broker) *NotificationRepository {
	return &NotificationRepository{db: db, broker: broker}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return err
	}
	if r.broker != nil {
		r.broker.Publish(feed.Event{Type: feed.Insert, Collection: "notifications", Row: *n})
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var notifs []domain.Notification
	tx := q.Find(&notifs)
	return notifs, tx.Error
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID int64, id string) error {
	return r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// CountUnread respects ctx deadlines; the poller bounds it to 8 seconds.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count)
	return count, tx.Error
}
