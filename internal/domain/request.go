package domain

import "time"

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestBooked    RequestStatus = "booked"
	RequestCompleted RequestStatus = "completed"
)

// HelpRequest is a student's posted ask for tutoring help.
// ID is zero until the row is persisted; the store assigns it.
// Expiry (15 days without action) is derived at read time, never persisted.
type HelpRequest struct {
	ID          int64         `gorm:"primaryKey" json:"request_id"`
	UserID      int64         `gorm:"index" json:"user_id"`
	CourseID    int64         `gorm:"index" json:"course_id"`
	Title       string        `gorm:"size:255" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Tags        []string      `gorm:"serializer:json" json:"tags"`
	Status      RequestStatus `gorm:"size:16;index" json:"status"`
	AssignedTo  *int64        `json:"assigned_to,omitempty"`
	CreatedAt   time.Time     `gorm:"index" json:"create_date"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (HelpRequest) TableName() string { return "help_requests" }
