package domain

import "time"

type ReportTarget string

const (
	ReportTargetMessage ReportTarget = "message"
	ReportTargetRequest ReportTarget = "request"
	ReportTargetUser    ReportTarget = "user"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
	ReportResolved ReportStatus = "resolved"
)

type Report struct {
	ID         int64        `gorm:"primaryKey" json:"id"`
	ReporterID int64        `gorm:"index" json:"reporter_id"`
	TargetType ReportTarget `gorm:"size:16" json:"target_type"`
	TargetID   int64        `json:"target_id"`
	Reason     string       `gorm:"type:text" json:"reason"`
	Status     ReportStatus `gorm:"size:16;index" json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (Report) TableName() string { return "reports" }
