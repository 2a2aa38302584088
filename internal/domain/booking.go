package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentEscrow   PaymentStatus = "escrow"
	PaymentReleased PaymentStatus = "released"
)

// Booking is a scheduled tutoring session between a requester and a provider.
// PaymentStatus only ever moves forward: pending -> escrow -> released.
type Booking struct {
	ID            int64         `gorm:"primaryKey" json:"id"`
	RequesterID   int64         `gorm:"index" json:"requester_id"`
	ProviderID    int64         `gorm:"index" json:"provider_id"`
	RequestID     *int64        `gorm:"uniqueIndex:idx_one_booking_per_request" json:"request_id,omitempty"`
	Title         string        `gorm:"size:255" json:"title"`
	Date          time.Time     `json:"date"`
	Status        BookingStatus `gorm:"size:16" json:"status"`
	PaymentStatus PaymentStatus `gorm:"size:16" json:"payment_status"`
	Price         float64       `json:"price"`
	Location      string        `gorm:"size:255" json:"location,omitempty"`
	PaymentRef    string        `gorm:"size:64" json:"payment_ref,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }
