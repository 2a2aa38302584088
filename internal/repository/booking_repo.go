package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"peerconnect/internal/domain"
	"peerconnect/internal/feed"
	"peerconnect/internal/gateway"
)

type BookingRepository struct {
	db     *gorm.DB
	broker *feed.Broker
}

func NewBookingRepository(db *gorm.DB, broker *feed.Broker) *BookingRepository {
	return &BookingRepository{db: db, broker: broker}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return err
	}
	r.publish(feed.Insert, b)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).First(&b, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, gateway.ErrNotFound
		}
		return nil, tx.Error
	}
	return &b, nil
}

// ListByUser returns bookings where the user is either party, newest first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("requester_id = ? OR provider_id = ?", userID, userID).
		Order("date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var bookings []domain.Booking
	tx := q.Find(&bookings)
	return bookings, tx.Error
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	if err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.publish(feed.Update, b)
	return b, nil
}

// UpdatePaymentStatus advances the escrow state and records the simulator's
// transaction reference. The caller validates the transition first.
func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus, paymentRef string) (*domain.Booking, error) {
	updates := map[string]any{"payment_status": status}
	if paymentRef != "" {
		updates["payment_ref"] = paymentRef
	}
	if err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.publish(feed.Update, b)
	return b, nil
}

func (r *BookingRepository) publish(t feed.EventType, b *domain.Booking) {
	if r.broker != nil {
		r.broker.Publish(feed.Event{Type: t, Collection: "bookings", Row: *b})
	}
}
