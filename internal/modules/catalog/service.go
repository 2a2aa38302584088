// Package catalog serves the course list help requests reference. The list
// changes rarely, so reads go through the 24-hour cache with stale
// fallback.
package catalog

import (
	"context"
	"errors"
	"time"

	"peerconnect/internal/cache"
	"peerconnect/internal/domain"
	"peerconnect/internal/gateway"
)

const courseListTTL = 24 * time.Hour

var ErrNotFound = errors.New("course not found")

type courseRepo interface {
	List(ctx context.Context) ([]domain.Course, error)
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
}

type Service struct {
	courses courseRepo
	cache   *cache.Cache
}

func NewService(courses courseRepo, c *cache.Cache) *Service {
	return &Service{courses: courses, cache: c}
}

func (s *Service) ListCourses(ctx context.Context) ([]domain.Course, error) {
	return cache.Fetch(ctx, s.cache, cache.Key("courses", "all"), courseListTTL,
		func(ctx context.Context) ([]domain.Course, error) {
			return s.courses.List(ctx)
		})
}

func (s *Service) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	c, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
