package domain

import "time"

// Message is one direct message. A conversation is the unordered pair
// {SenderID, ReceiverID}; ordering within it is by CreatedAt ascending.
// Content is immutable after creation; only IsRead flips.
type Message struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	SenderID       int64     `gorm:"index" json:"sender_id"`
	ReceiverID     int64     `gorm:"index" json:"receiver_id"`
	Content        string    `gorm:"type:text" json:"content"`
	IsRead         bool      `json:"is_read"`
	SafetyAnalysis *string   `gorm:"type:text" json:"safety_analysis,omitempty"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (Message) TableName() string { return "messages" }
