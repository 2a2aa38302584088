package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"peerconnect/internal/domain"
	"peerconnect/internal/payments"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus, paymentRef string) (*domain.Booking, error) {
	args := m.Called(ctx, id, status, paymentRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type mockRequestCloser struct {
	mock.Mock
}

func (m *mockRequestCloser) GetByID(ctx context.Context, id int64) (*domain.HelpRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HelpRequest), args.Error(1)
}

func (m *mockRequestCloser) Update(ctx context.Context, req *domain.HelpRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type mockCharger struct {
	mock.Mock
}

func (m *mockCharger) Process(ctx context.Context, senderID, receiverID int64, amount float64, referenceID string) (*domain.Transaction, error) {
	args := m.Called(ctx, senderID, receiverID, amount, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, userID int64, ntype, content string, data map[string]any) error {
	args := m.Called(ctx, userID, ntype, content, data)
	return args.Error(0)
}

func newTestService(bookings bookingRepo, requests requestCloser, charger Charger, notifs Notifier) *Service {
	return NewService(bookings, requests, charger, notifs, zap.NewNop(), func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	})
}

func TestService_Create(t *testing.T) {
	t.Run("success notifies provider", func(t *testing.T) {
		repo := new(mockBookingRepo)
		notifs := new(mockNotifier)
		svc := newTestService(repo, nil, nil, notifs)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Status == domain.BookingPending && b.PaymentStatus == domain.PaymentPending
		})).Return(nil)
		notifs.On("Notify", mock.Anything, int64(12), domain.NotifyBookingCreated, mock.Anything, mock.Anything).Return(nil)

		b, err := svc.Create(context.Background(), 7, CreateBookingInput{
			ProviderID: 12,
			Title:      "Calculus session",
			Date:       time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC),
			Price:      40,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingPending, b.Status)
		notifs.AssertExpectations(t)
	})

	t.Run("self booking rejected", func(t *testing.T) {
		svc := newTestService(new(mockBookingRepo), nil, nil, nil)
		_, err := svc.Create(context.Background(), 7, CreateBookingInput{
			ProviderID: 7,
			Title:      "x",
			Date:       time.Now(),
			Price:      1,
		})
		assert.ErrorIs(t, err, ErrSelfBooking)
	})

	t.Run("zero price rejected", func(t *testing.T) {
		svc := newTestService(new(mockBookingRepo), nil, nil, nil)
		_, err := svc.Create(context.Background(), 7, CreateBookingInput{
			ProviderID: 12,
			Title:      "x",
			Date:       time.Now(),
		})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestService_Confirm(t *testing.T) {
	repo := new(mockBookingRepo)
	notifs := new(mockNotifier)
	svc := newTestService(repo, nil, nil, notifs)

	stored := &domain.Booking{ID: 1, RequesterID: 7, ProviderID: 12, Title: "s", Status: domain.BookingPending}
	confirmed := &domain.Booking{ID: 1, RequesterID: 7, ProviderID: 12, Title: "s", Status: domain.BookingConfirmed}
	repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), domain.BookingConfirmed).Return(confirmed, nil)
	notifs.On("Notify", mock.Anything, int64(7), domain.NotifyBookingConfirmed, mock.Anything, mock.Anything).Return(nil)

	b, err := svc.Confirm(context.Background(), 12, 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
}

func TestService_Confirm_RequesterRejected(t *testing.T) {
	repo := new(mockBookingRepo)
	svc := newTestService(repo, nil, nil, nil)

	stored := &domain.Booking{ID: 1, RequesterID: 7, ProviderID: 12, Status: domain.BookingPending}
	repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)

	_, err := svc.Confirm(context.Background(), 7, 1)
	assert.ErrorIs(t, err, ErrProviderOnly)
}

func TestService_Cancel_FromCanceledRejected(t *testing.T) {
	repo := new(mockBookingRepo)
	svc := newTestService(repo, nil, nil, nil)

	stored := &domain.Booking{ID: 1, RequesterID: 7, ProviderID: 12, Status: domain.BookingCanceled}
	repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)

	_, err := svc.Cancel(context.Background(), 7, 1)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_PlaceEscrow(t *testing.T) {
	t.Run("charge succeeds then escrow recorded", func(t *testing.T) {
		repo := new(mockBookingRepo)
		charger := new(mockCharger)
		svc := newTestService(repo, nil, charger, nil)

		stored := &domain.Booking{
			ID: 1, RequesterID: 7, ProviderID: 12,
			Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentPending, Price: 40,
		}
		escrowed := &domain.Booking{
			ID: 1, RequesterID: 7, ProviderID: 12,
			Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentEscrow, Price: 40, PaymentRef: "txn-1",
		}
		repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)
		charger.On("Process", mock.Anything, int64(7), int64(12), 40.0, "booking:1").
			Return(&domain.Transaction{ID: "txn-1", Status: domain.TransactionCompleted}, nil)
		repo.On("UpdatePaymentStatus", mock.Anything, int64(1), domain.PaymentEscrow, "txn-1").Return(escrowed, nil)

		b, err := svc.PlaceEscrow(context.Background(), 7, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentEscrow, b.PaymentStatus)
		assert.Equal(t, "txn-1", b.PaymentRef)
	})

	t.Run("decline leaves booking untouched", func(t *testing.T) {
		repo := new(mockBookingRepo)
		charger := new(mockCharger)
		svc := newTestService(repo, nil, charger, nil)

		stored := &domain.Booking{
			ID: 1, RequesterID: 7, ProviderID: 12,
			Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentPending, Price: 40,
		}
		repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)
		charger.On("Process", mock.Anything, int64(7), int64(12), 40.0, "booking:1").
			Return(nil, payments.ErrDeclined)

		_, err := svc.PlaceEscrow(context.Background(), 7, 1)
		assert.ErrorIs(t, err, ErrPaymentDeclined)
		repo.AssertNotCalled(t, "UpdatePaymentStatus")
	})

	t.Run("provider cannot place escrow", func(t *testing.T) {
		repo := new(mockBookingRepo)
		svc := newTestService(repo, nil, nil, nil)

		stored := &domain.Booking{ID: 1, RequesterID: 7, ProviderID: 12, Status: domain.BookingConfirmed}
		repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)

		_, err := svc.PlaceEscrow(context.Background(), 12, 1)
		assert.ErrorIs(t, err, ErrRequesterOnly)
	})

	t.Run("double escrow rejected", func(t *testing.T) {
		repo := new(mockBookingRepo)
		svc := newTestService(repo, nil, nil, nil)

		stored := &domain.Booking{
			ID: 1, RequesterID: 7, ProviderID: 12,
			Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentEscrow, Price: 40,
		}
		repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)

		_, err := svc.PlaceEscrow(context.Background(), 7, 1)
		assert.ErrorIs(t, err, ErrInvalidPayment)
	})
}

func TestService_ReleaseEscrow(t *testing.T) {
	t.Run("release closes linked request", func(t *testing.T) {
		repo := new(mockBookingRepo)
		requests := new(mockRequestCloser)
		notifs := new(mockNotifier)
		svc := newTestService(repo, requests, nil, notifs)

		reqID := int64(33)
		stored := &domain.Booking{
			ID: 1, RequesterID: 7, ProviderID: 12, RequestID: &reqID, Title: "s",
			Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentEscrow, Price: 40,
		}
		released := &domain.Booking{
			ID: 1, RequesterID: 7, ProviderID: 12, RequestID: &reqID, Title: "s",
			Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentReleased, Price: 40,
		}
		repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)
		repo.On("UpdatePaymentStatus", mock.Anything, int64(1), domain.PaymentReleased, "").Return(released, nil)
		requests.On("GetByID", mock.Anything, reqID).
			Return(&domain.HelpRequest{ID: reqID, Status: domain.RequestBooked}, nil)
		requests.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.HelpRequest) bool {
			return r.Status == domain.RequestCompleted
		})).Return(nil)
		notifs.On("Notify", mock.Anything, int64(12), domain.NotifyEscrowReleased, mock.Anything, mock.Anything).Return(nil)

		b, err := svc.ReleaseEscrow(context.Background(), 7, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentReleased, b.PaymentStatus)
		requests.AssertExpectations(t)
	})

	t.Run("release without escrow rejected", func(t *testing.T) {
		repo := new(mockBookingRepo)
		svc := newTestService(repo, nil, nil, nil)

		stored := &domain.Booking{
			ID: 1, RequesterID: 7, ProviderID: 12,
			Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentPending,
		}
		repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)

		_, err := svc.ReleaseEscrow(context.Background(), 7, 1)
		assert.ErrorIs(t, err, ErrInvalidPayment)
	})

	t.Run("double release rejected", func(t *testing.T) {
		repo := new(mockBookingRepo)
		svc := newTestService(repo, nil, nil, nil)

		stored := &domain.Booking{
			ID: 1, RequesterID: 7, ProviderID: 12,
			Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentReleased,
		}
		repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)

		_, err := svc.ReleaseEscrow(context.Background(), 7, 1)
		assert.ErrorIs(t, err, ErrInvalidPayment)
	})
}
