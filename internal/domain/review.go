package domain

import "time"

// Review is immutable once created. Nothing ties a review uniquely to a
// booking: duplicates per (reviewer, booking) are permitted.
type Review struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	ReviewerID int64     `gorm:"index" json:"reviewer_id"`
	RevieweeID int64     `gorm:"index" json:"reviewee_id"`
	BookingID  *int64    `json:"booking_id,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Review) TableName() string { return "reviews" }
