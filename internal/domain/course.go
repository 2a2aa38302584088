package domain

// Course is a catalog entry help requests point at. The list changes rarely,
// so reads go through the 24h cache.
type Course struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	Code       string `gorm:"uniqueIndex;size:32" json:"code"`
	Name       string `gorm:"size:255" json:"name"`
	Department string `gorm:"size:128" json:"department,omitempty"`
}

func (Course) TableName() string { return "courses" }
