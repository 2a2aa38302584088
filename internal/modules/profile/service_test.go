package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"peerconnect/internal/cache"
	"peerconnect/internal/domain"
	"peerconnect/internal/gateway"
)

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProfileRepo) SetPushToken(ctx context.Context, userID int64, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

func (m *mockProfileRepo) SetVerified(ctx context.Context, userID int64, verified bool) error {
	return m.Called(ctx, userID, verified).Error(0)
}

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, bucket, path, data, contentType)
	return args.String(0), args.Error(1)
}

func newTestService(repo *mockProfileRepo, blobs *mockBlobStore) *Service {
	return NewService(repo, blobs, cache.New(cache.NewMemStore(), zap.NewNop(), nil))
}

func TestGet_CachesSecondRead(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := newTestService(repo, new(mockBlobStore))

	repo.On("GetByUserID", mock.Anything, int64(7)).
		Return(&domain.Profile{UserID: 7, FullName: "Ada"}, nil)

	for i := 0; i < 2; i++ {
		p, err := svc.Get(context.Background(), 7)
		assert.NoError(t, err)
		assert.Equal(t, "Ada", p.FullName)
	}
	repo.AssertNumberOfCalls(t, "GetByUserID", 1)
}

func TestGet_NotFound(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := newTestService(repo, new(mockBlobStore))

	repo.On("GetByUserID", mock.Anything, int64(99)).Return(nil, gateway.ErrNotFound)

	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := newTestService(repo, new(mockBlobStore))

	_, err := svc.Update(context.Background(), gateway.Identity{UserID: 8, Role: "user"}, 7, "New Name")
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdate_AdminMayEditOthers(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := newTestService(repo, new(mockBlobStore))

	repo.On("GetByUserID", mock.Anything, int64(7)).
		Return(&domain.Profile{UserID: 7, FullName: "Old"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.FullName == "New Name"
	})).Return(nil)

	p, err := svc.Update(context.Background(), gateway.Identity{UserID: 1, Role: "admin"}, 7, "New Name")
	assert.NoError(t, err)
	assert.Equal(t, "New Name", p.FullName)
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := newTestService(repo, new(mockBlobStore))

	repo.On("GetByUserID", mock.Anything, int64(7)).
		Return(&domain.Profile{UserID: 7, FullName: "Old"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Get(context.Background(), 7)
	assert.NoError(t, err)

	_, err = svc.Update(context.Background(), gateway.Identity{UserID: 7, Role: "user"}, 7, "New Name")
	assert.NoError(t, err)

	// Update plus the re-read after invalidation both hit the repo.
	_, err = svc.Get(context.Background(), 7)
	assert.NoError(t, err)
	repo.AssertNumberOfCalls(t, "GetByUserID", 3)
}

func TestUploadAvatar(t *testing.T) {
	repo := new(mockProfileRepo)
	blobs := new(mockBlobStore)
	svc := newTestService(repo, blobs)

	blobs.On("Upload", mock.Anything, "avatars", "7/avatar", []byte{1, 2, 3}, "image/png").
		Return("https://blobs.local/avatars/7/avatar", nil)
	repo.On("GetByUserID", mock.Anything, int64(7)).
		Return(&domain.Profile{UserID: 7}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.AvatarURL == "https://blobs.local/avatars/7/avatar"
	})).Return(nil)

	url, err := svc.UploadAvatar(context.Background(), 7, []byte{1, 2, 3}, "image/png")
	assert.NoError(t, err)
	assert.Equal(t, "https://blobs.local/avatars/7/avatar", url)
}

func TestUploadAvatar_EmptyRejected(t *testing.T) {
	svc := newTestService(new(mockProfileRepo), new(mockBlobStore))

	_, err := svc.UploadAvatar(context.Background(), 7, nil, "image/png")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetVerified_AdminOnly(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := newTestService(repo, new(mockBlobStore))

	err := svc.SetVerified(context.Background(), gateway.Identity{UserID: 7, Role: "user"}, 7, true)
	assert.ErrorIs(t, err, ErrForbidden)

	repo.On("SetVerified", mock.Anything, int64(7), true).Return(nil)
	err = svc.SetVerified(context.Background(), gateway.Identity{UserID: 1, Role: "admin"}, 7, true)
	assert.NoError(t, err)
}
