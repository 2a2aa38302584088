package request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"peerconnect/internal/domain"
	"peerconnect/internal/gateway"
	"peerconnect/internal/repository"
)

type mockRequestRepo struct {
	mock.Mock
}

func (m *mockRequestRepo) Create(ctx context.Context, req *domain.HelpRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id int64) (*domain.HelpRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HelpRequest), args.Error(1)
}

func (m *mockRequestRepo) List(ctx context.Context, f repository.RequestFilter) ([]domain.HelpRequest, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HelpRequest), args.Error(1)
}

func (m *mockRequestRepo) ListByUser(ctx context.Context, userID int64) ([]domain.HelpRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HelpRequest), args.Error(1)
}

func (m *mockRequestRepo) Update(ctx context.Context, req *domain.HelpRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockRequestRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, userID int64, ntype, content string, data map[string]any) error {
	args := m.Called(ctx, userID, ntype, content, data)
	return args.Error(0)
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestService_Create_Validation(t *testing.T) {
	repo := new(mockRequestRepo)
	svc := NewService(repo, nil, nil)

	_, err := svc.Create(context.Background(), 1, CreateRequestInput{Title: "   ", CourseID: 5})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), 1, CreateRequestInput{Title: "Need calculus help"})
	assert.ErrorIs(t, err, ErrValidation)

	repo.AssertNotCalled(t, "Create")
}

func TestService_Create_Success(t *testing.T) {
	repo := new(mockRequestRepo)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(repo, nil, fixedNow(now))

	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.HelpRequest) bool {
		return r.UserID == 7 && r.Title == "Need calculus help" &&
			r.Status == domain.RequestPending && r.CreatedAt.Equal(now)
	})).Return(nil)

	req, err := svc.Create(context.Background(), 7, CreateRequestInput{
		CourseID: 5,
		Title:    "  Need calculus help  ",
		Tags:     []string{"calculus", "urgent"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Need calculus help", req.Title)
	repo.AssertExpectations(t)
}

func TestService_Browse_FiltersExpired(t *testing.T) {
	repo := new(mockRequestRepo)
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	svc := NewService(repo, nil, fixedNow(now))

	fresh := domain.HelpRequest{ID: 1, Title: "fresh", Status: domain.RequestPending, CreatedAt: now.AddDate(0, 0, -3)}
	stale := domain.HelpRequest{ID: 2, Title: "stale", Status: domain.RequestPending, CreatedAt: now.AddDate(0, 0, -20)}
	repo.On("List", mock.Anything, mock.Anything).Return([]domain.HelpRequest{fresh, stale}, nil)

	views, err := svc.Browse(context.Background(), BrowseFilter{})
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, int64(1), views[0].ID)
	assert.False(t, views[0].Expired)
	assert.Equal(t, 3, views[0].DaysElapsed)
}

func TestService_ListMine_KeepsExpiredWithFlag(t *testing.T) {
	repo := new(mockRequestRepo)
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	svc := NewService(repo, nil, fixedNow(now))

	stale := domain.HelpRequest{ID: 2, UserID: 7, Status: domain.RequestPending, CreatedAt: now.AddDate(0, 0, -20)}
	repo.On("ListByUser", mock.Anything, int64(7)).Return([]domain.HelpRequest{stale}, nil)

	views, err := svc.ListMine(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.True(t, views[0].Expired)
	assert.Equal(t, 20, views[0].DaysElapsed)
}

func TestService_Update_OwnerOnly(t *testing.T) {
	repo := new(mockRequestRepo)
	svc := NewService(repo, nil, nil)

	stored := &domain.HelpRequest{ID: 3, UserID: 7, Title: "old"}
	repo.On("GetByID", mock.Anything, int64(3)).Return(stored, nil)

	title := "new title"
	_, err := svc.Update(context.Background(), 99, 3, UpdateRequestInput{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Update")
}

func TestService_Update_NotFound(t *testing.T) {
	repo := new(mockRequestRepo)
	svc := NewService(repo, nil, nil)

	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gateway.ErrNotFound)

	_, err := svc.Update(context.Background(), 7, 404, UpdateRequestInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Assign(t *testing.T) {
	t.Run("success notifies owner", func(t *testing.T) {
		repo := new(mockRequestRepo)
		notifs := new(mockNotifier)
		svc := NewService(repo, notifs, nil)

		stored := &domain.HelpRequest{ID: 3, UserID: 7, Title: "Linear algebra", Status: domain.RequestPending}
		repo.On("GetByID", mock.Anything, int64(3)).Return(stored, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.HelpRequest) bool {
			return r.Status == domain.RequestBooked && r.AssignedTo != nil && *r.AssignedTo == 12
		})).Return(nil)
		notifs.On("Notify", mock.Anything, int64(7), domain.NotifyRequestAssigned, mock.Anything, mock.Anything).Return(nil)

		req, err := svc.Assign(context.Background(), 12, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.RequestBooked, req.Status)
		notifs.AssertExpectations(t)
	})

	t.Run("self assignment rejected", func(t *testing.T) {
		repo := new(mockRequestRepo)
		svc := NewService(repo, nil, nil)

		stored := &domain.HelpRequest{ID: 3, UserID: 7, Status: domain.RequestPending}
		repo.On("GetByID", mock.Anything, int64(3)).Return(stored, nil)

		_, err := svc.Assign(context.Background(), 7, 3)
		assert.ErrorIs(t, err, ErrSelfAssignment)
	})

	t.Run("already booked rejected", func(t *testing.T) {
		repo := new(mockRequestRepo)
		svc := NewService(repo, nil, nil)

		stored := &domain.HelpRequest{ID: 3, UserID: 7, Status: domain.RequestBooked}
		repo.On("GetByID", mock.Anything, int64(3)).Return(stored, nil)

		_, err := svc.Assign(context.Background(), 12, 3)
		assert.ErrorIs(t, err, ErrAlreadyAssigned)
	})
}

func TestService_Complete(t *testing.T) {
	repo := new(mockRequestRepo)
	svc := NewService(repo, nil, nil)

	stored := &domain.HelpRequest{ID: 3, UserID: 7, Status: domain.RequestBooked}
	repo.On("GetByID", mock.Anything, int64(3)).Return(stored, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.HelpRequest) bool {
		return r.Status == domain.RequestCompleted
	})).Return(nil)

	req, err := svc.Complete(context.Background(), 7, 3)
	assert.NoError(t, err)
	assert.Equal(t, domain.RequestCompleted, req.Status)
}

func TestService_Complete_PendingRejected(t *testing.T) {
	repo := new(mockRequestRepo)
	svc := NewService(repo, nil, nil)

	stored := &domain.HelpRequest{ID: 3, UserID: 7, Status: domain.RequestPending}
	repo.On("GetByID", mock.Anything, int64(3)).Return(stored, nil)

	_, err := svc.Complete(context.Background(), 7, 3)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
