package payments

import "peerconnect/internal/domain"

// CanTransitionPayment enforces the escrow lifecycle:
// pending -> escrow -> released, forward only, no skipping.
func CanTransitionPayment(from, to domain.PaymentStatus) bool {
	switch from {
	case domain.PaymentPending:
		return to == domain.PaymentEscrow
	case domain.PaymentEscrow:
		return to == domain.PaymentReleased
	default:
		return false
	}
}

// CanTransitionBooking enforces the booking status machine. Canceled is
// reachable only from pending or confirmed, and is terminal.
func CanTransitionBooking(from, to domain.BookingStatus) bool {
	switch from {
	case domain.BookingPending:
		return to == domain.BookingConfirmed || to == domain.BookingCanceled
	case domain.BookingConfirmed:
		return to == domain.BookingCanceled
	default:
		return false
	}
}
