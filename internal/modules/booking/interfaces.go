package booking

import (
	"context"

	"peerconnect/internal/domain"
)

type bookingRepo interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus, paymentRef string) (*domain.Booking, error)
}

// requestCloser marks the linked help request completed once escrow is
// released. Implemented by the request repository.
type requestCloser interface {
	GetByID(ctx context.Context, id int64) (*domain.HelpRequest, error)
	Update(ctx context.Context, req *domain.HelpRequest) error
}

// Charger is implemented by the payment simulator.
type Charger interface {
	Process(ctx context.Context, senderID, receiverID int64, amount float64, referenceID string) (*domain.Transaction, error)
}

// Notifier is implemented by the notification service.
type Notifier interface {
	Notify(ctx context.Context, userID int64, ntype, content string, data map[string]any) error
}
