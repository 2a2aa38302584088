package request

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"peerconnect/internal/classify"
	"peerconnect/internal/domain"
	"peerconnect/internal/gateway"
	"peerconnect/internal/repository"
)

type Service struct {
	requests requestRepo
	notifs   Notifier
	now      func() time.Time
}

// NewService builds the help-request service. now is injectable so tests
// can pin expiry boundaries; nil means wall clock.
func NewService(requests requestRepo, notifs Notifier, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{requests: requests, notifs: notifs, now: now}
}

func (s *Service) Create(ctx context.Context, userID int64, in CreateRequestInput) (*domain.HelpRequest, error) {
	if strings.TrimSpace(in.Title) == "" || in.CourseID == 0 {
		return nil, ErrValidation
	}

	req := &domain.HelpRequest{
		UserID:      userID,
		CourseID:    in.CourseID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Tags:        in.Tags,
		Status:      domain.RequestPending,
		CreatedAt:   s.now(),
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*RequestView, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	v := s.view(*req)
	return &v, nil
}

// Browse lists open requests for the marketplace feed. Requests past the
// 15-day window are filtered out client-visibly but stay in the store.
func (s *Service) Browse(ctx context.Context, f BrowseFilter) ([]RequestView, error) {
	rows, err := s.requests.List(ctx, repository.RequestFilter{
		CourseID: f.CourseID,
		Status:   domain.RequestPending,
		Tag:      f.Tag,
		Search:   f.Search,
		Limit:    f.Limit,
		Offset:   f.Offset,
	})
	if err != nil {
		return nil, err
	}

	out := make([]RequestView, 0, len(rows))
	for _, r := range rows {
		if classify.RequestExpired(s.now, r.CreatedAt) {
			continue
		}
		out = append(out, s.view(r))
	}
	return out, nil
}

// ListMine shows the owner everything, expired included, with the expiry
// flag set so the UI can badge it.
func (s *Service) ListMine(ctx context.Context, userID int64) ([]RequestView, error) {
	rows, err := s.requests.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]RequestView, 0, len(rows))
	for _, r := range rows {
		out = append(out, s.view(r))
	}
	return out, nil
}

// Update changes title/description. Owner only; assignment fields move
// through Assign.
func (s *Service) Update(ctx context.Context, userID, id int64, in UpdateRequestInput) (*domain.HelpRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.UserID != userID {
		return nil, ErrForbidden
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, ErrValidation
		}
		req.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		req.Description = *in.Description
	}
	req.UpdatedAt = s.now()

	if err := s.requests.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if req.UserID != userID {
		return ErrForbidden
	}
	return s.requests.Delete(ctx, id)
}

// Assign books providerID onto a pending request and notifies the owner.
func (s *Service) Assign(ctx context.Context, providerID, id int64) (*domain.HelpRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.UserID == providerID {
		return nil, ErrSelfAssignment
	}
	if req.Status != domain.RequestPending {
		return nil, ErrAlreadyAssigned
	}

	req.Status = domain.RequestBooked
	req.AssignedTo = &providerID
	req.UpdatedAt = s.now()
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.Notify(ctx, req.UserID, domain.NotifyRequestAssigned,
			fmt.Sprintf("Someone offered to help with %q", req.Title),
			map[string]any{"request_id": req.ID, "provider_id": providerID})
	}
	return req, nil
}

// Complete closes out a booked request. Owner only.
func (s *Service) Complete(ctx context.Context, userID, id int64) (*domain.HelpRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.UserID != userID {
		return nil, ErrForbidden
	}
	if req.Status != domain.RequestBooked {
		return nil, ErrInvalidStatus
	}

	req.Status = domain.RequestCompleted
	req.UpdatedAt = s.now()
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) view(req domain.HelpRequest) RequestView {
	return RequestView{
		HelpRequest: req,
		Expired:     classify.RequestExpired(s.now, req.CreatedAt),
		DaysElapsed: classify.DaysSince(s.now, req.CreatedAt),
		StatusColor: classify.StatusColor(string(req.Status)),
	}
}
