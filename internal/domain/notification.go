package domain

import "time"

// Notification type constants
const (
	NotifyNewMessage       = "message.new"
	NotifyBookingCreated   = "booking.created"
	NotifyBookingConfirmed = "booking.confirmed"
	NotifyBookingCanceled  = "booking.canceled"
	NotifyRequestAssigned  = "request.assigned"
	NotifyReviewPosted     = "review.posted"
	NotifyEscrowReleased   = "payment.released"
)

type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    int64     `gorm:"index" json:"user_id"`
	Type      string    `gorm:"size:64;index" json:"type"`
	Content   string    `gorm:"type:text" json:"content"`
	Data      string    `gorm:"type:text" json:"data,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
