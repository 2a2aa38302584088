package booking

import "time"

type CreateBookingInput struct {
	ProviderID int64     `json:"provider_id" binding:"required"`
	RequestID  *int64    `json:"request_id"`
	Title      string    `json:"title" binding:"required"`
	Date       time.Time `json:"date" binding:"required"`
	Price      float64   `json:"price" binding:"required"`
	Location   string    `json:"location"`
}
