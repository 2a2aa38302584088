package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"peerconnect/internal/cache"
	"peerconnect/internal/domain"
	"peerconnect/internal/gateway"
)

// profileTTL matches the mobile client's staleness bound for profiles.
const profileTTL = time.Hour

const avatarBucket = "avatars"

type Service struct {
	profiles profileRepo
	blobs    blobStore
	cache    *cache.Cache
}

func NewService(profiles profileRepo, blobs blobStore, c *cache.Cache) *Service {
	return &Service{profiles: profiles, blobs: blobs, cache: c}
}

// Get reads through the 1-hour cache and falls back to a stale copy when
// the store is unreachable.
func (s *Service) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	p, err := cache.Fetch(ctx, s.cache, cache.Key("profile", userID), profileTTL,
		func(ctx context.Context) (domain.Profile, error) {
			p, err := s.profiles.GetByUserID(ctx, userID)
			if err != nil {
				return domain.Profile{}, err
			}
			return *p, nil
		})
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update lets the owner (or an admin) change display fields. The cache
// entry is invalidated so the next read refetches.
func (s *Service) Update(ctx context.Context, actor gateway.Identity, userID int64, fullName string) (*domain.Profile, error) {
	if actor.UserID != userID && actor.Role != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	if fullName == "" {
		return nil, ErrValidation
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.FullName = fullName
	p.UpdatedAt = time.Now()
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.Key("profile", userID))
	return p, nil
}

// UploadAvatar stores the image and points the profile at its public URL.
func (s *Service) UploadAvatar(ctx context.Context, userID int64, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", ErrValidation
	}

	path := fmt.Sprintf("%d/avatar", userID)
	url, err := s.blobs.Upload(ctx, avatarBucket, path, data, contentType)
	if err != nil {
		return "", err
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	p.AvatarURL = url
	p.UpdatedAt = time.Now()
	if err := s.profiles.Update(ctx, p); err != nil {
		return "", err
	}

	s.cache.Invalidate(ctx, cache.Key("profile", userID))
	return url, nil
}

func (s *Service) SetPushToken(ctx context.Context, userID int64, token string) error {
	if err := s.profiles.SetPushToken(ctx, userID, token); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.Key("profile", userID))
	return nil
}

// SetVerified is admin-only.
func (s *Service) SetVerified(ctx context.Context, actor gateway.Identity, userID int64, verified bool) error {
	if actor.Role != string(domain.RoleAdmin) {
		return ErrForbidden
	}
	if err := s.profiles.SetVerified(ctx, userID, verified); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.Key("profile", userID))
	return nil
}
