// Package gateway holds the contracts the service layer uses to reach the
// durable store: shared read errors, the caller identity, and blob storage.
// Row CRUD itself is exposed through the typed repositories in
// internal/repository; change-feed subscriptions through internal/feed.
package gateway

import "errors"

var (
	// ErrNotFound is returned by exactly-one reads that matched zero rows.
	// Optional reads return (nil, nil) instead.
	ErrNotFound = errors.New("row not found")
	// ErrMultipleRows is returned by exactly-one reads that matched more
	// than one row.
	ErrMultipleRows = errors.New("filter matched multiple rows")
)

// Identity is the authenticated caller, as resolved from the access token.
type Identity struct {
	UserID int64
	Role   string
}
