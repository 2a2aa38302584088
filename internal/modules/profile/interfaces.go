package profile

import (
	"context"

	"peerconnect/internal/domain"
)

type profileRepo interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	SetPushToken(ctx context.Context, userID int64, token string) error
	SetVerified(ctx context.Context, userID int64, verified bool) error
}

type blobStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
}
