package auth

import (
	"context"

	"peerconnect/internal/domain"
)

type userRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type profileCreator interface {
	Create(ctx context.Context, p *domain.Profile) error
}

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}
