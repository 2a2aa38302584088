package request

import "peerconnect/internal/domain"

type CreateRequestInput struct {
	CourseID    int64    `json:"course_id" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type UpdateRequestInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type BrowseFilter struct {
	CourseID int64
	Tag      string
	Search   string
	Limit    int
	Offset   int
}

// RequestView decorates a stored request with the derived fields the list
// screens render. Expiry is computed at read time, never persisted.
type RequestView struct {
	domain.HelpRequest
	Expired     bool   `json:"expired"`
	DaysElapsed int    `json:"days_elapsed"`
	StatusColor string `json:"status_color"`
}
