package domain

// AvailabilitySlot is a weekly recurring window in which a user offers help.
// StartTime/EndTime are "HH:MM" wall-clock strings, DayOfWeek 0 (Sunday) - 6.
type AvailabilitySlot struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	UserID    int64  `gorm:"index" json:"user_id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
}

func (AvailabilitySlot) TableName() string { return "availability_slots" }
