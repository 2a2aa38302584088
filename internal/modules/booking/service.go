package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"peerconnect/internal/domain"
	"peerconnect/internal/gateway"
	"peerconnect/internal/payments"
)

type Service struct {
	bookings bookingRepo
	requests requestCloser
	charger  Charger
	notifs   Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewService(bookings bookingRepo, requests requestCloser, charger Charger, notifs Notifier, log *zap.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		bookings: bookings,
		requests: requests,
		charger:  charger,
		notifs:   notifs,
		log:      log,
		now:      now,
	}
}

// Create opens a pending booking. At most one booking may reference a given
// help request; the unique index enforces it and the violation is surfaced
// as ErrAlreadyBooked.
func (s *Service) Create(ctx context.Context, requesterID int64, in CreateBookingInput) (*domain.Booking, error) {
	if strings.TrimSpace(in.Title) == "" || in.Price <= 0 || in.Date.IsZero() {
		return nil, ErrValidation
	}
	if in.ProviderID == requesterID {
		return nil, ErrSelfBooking
	}

	b := &domain.Booking{
		RequesterID:   requesterID,
		ProviderID:    in.ProviderID,
		RequestID:     in.RequestID,
		Title:         strings.TrimSpace(in.Title),
		Date:          in.Date,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
		Price:         in.Price,
		Location:      in.Location,
		CreatedAt:     s.now(),
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyBooked
		}
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}

	s.notify(ctx, b.ProviderID, domain.NotifyBookingCreated,
		fmt.Sprintf("New booking request: %s", b.Title), b.ID)
	return b, nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.RequesterID != userID && b.ProviderID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

// Confirm moves pending -> confirmed. Provider only.
func (s *Service) Confirm(ctx context.Context, userID, id int64) (*domain.Booking, error) {
	b, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if b.ProviderID != userID {
		return nil, ErrProviderOnly
	}
	if !payments.CanTransitionBooking(b.Status, domain.BookingConfirmed) {
		return nil, ErrInvalidStatus
	}

	b, err = s.bookings.UpdateStatus(ctx, id, domain.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.RequesterID, domain.NotifyBookingConfirmed,
		fmt.Sprintf("Your booking %q was confirmed", b.Title), b.ID)
	return b, nil
}

// Cancel is allowed to either party while the booking is pending or
// confirmed. Escrowed funds stay escrowed; release never happens on a
// canceled booking.
func (s *Service) Cancel(ctx context.Context, userID, id int64) (*domain.Booking, error) {
	b, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !payments.CanTransitionBooking(b.Status, domain.BookingCanceled) {
		return nil, ErrInvalidStatus
	}

	b, err = s.bookings.UpdateStatus(ctx, id, domain.BookingCanceled)
	if err != nil {
		return nil, err
	}

	other := b.ProviderID
	if userID == b.ProviderID {
		other = b.RequesterID
	}
	s.notify(ctx, other, domain.NotifyBookingCanceled,
		fmt.Sprintf("Booking %q was canceled", b.Title), b.ID)
	return b, nil
}

// PlaceEscrow charges the requester and parks the funds. The charge happens
// before any state change, so a decline leaves the booking untouched.
func (s *Service) PlaceEscrow(ctx context.Context, userID, id int64) (*domain.Booking, error) {
	b, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if b.RequesterID != userID {
		return nil, ErrRequesterOnly
	}
	if b.Status != domain.BookingConfirmed {
		return nil, ErrNotConfirmed
	}
	if !payments.CanTransitionPayment(b.PaymentStatus, domain.PaymentEscrow) {
		return nil, ErrInvalidPayment
	}

	txn, err := s.charger.Process(ctx, b.RequesterID, b.ProviderID, b.Price, fmt.Sprintf("booking:%d", b.ID))
	if err != nil {
		if errors.Is(err, payments.ErrDeclined) {
			s.log.Info("escrow charge declined",
				zap.Int64("booking_id", b.ID),
				zap.Int64("requester_id", b.RequesterID))
			return nil, ErrPaymentDeclined
		}
		return nil, err
	}

	return s.bookings.UpdatePaymentStatus(ctx, id, domain.PaymentEscrow, txn.ID)
}

// ReleaseEscrow pays the provider out. Requester only, and only from
// escrow. A linked help request is closed out as a side effect; failure
// there is logged, not surfaced, since the money already moved.
func (s *Service) ReleaseEscrow(ctx context.Context, userID, id int64) (*domain.Booking, error) {
	b, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if b.RequesterID != userID {
		return nil, ErrRequesterOnly
	}
	if b.Status != domain.BookingConfirmed {
		return nil, ErrInvalidStatus
	}
	if !payments.CanTransitionPayment(b.PaymentStatus, domain.PaymentReleased) {
		return nil, ErrInvalidPayment
	}

	b, err = s.bookings.UpdatePaymentStatus(ctx, id, domain.PaymentReleased, "")
	if err != nil {
		return nil, err
	}

	if b.RequestID != nil {
		if err := s.closeRequest(ctx, *b.RequestID); err != nil {
			s.log.Warn("failed to close linked request after release",
				zap.Int64("booking_id", b.ID),
				zap.Int64("request_id", *b.RequestID),
				zap.Error(err))
		}
	}

	s.notify(ctx, b.ProviderID, domain.NotifyEscrowReleased,
		fmt.Sprintf("Payment of %.2f released for %q", b.Price, b.Title), b.ID)
	return b, nil
}

func (s *Service) closeRequest(ctx context.Context, requestID int64) error {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status == domain.RequestCompleted {
		return nil
	}
	req.Status = domain.RequestCompleted
	req.UpdatedAt = s.now()
	return s.requests.Update(ctx, req)
}

func (s *Service) notify(ctx context.Context, userID int64, ntype, content string, bookingID int64) {
	if s.notifs == nil {
		return
	}
	_ = s.notifs.Notify(ctx, userID, ntype, content, map[string]any{"booking_id": bookingID})
}
