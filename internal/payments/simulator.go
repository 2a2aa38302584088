// Package payments stands in for a real payment gateway. It keeps the
// async contract a real one would have (latency, possible decline) while
// moving no actual funds, and owns the escrow transition rules.
package payments

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"peerconnect/internal/domain"
)

var (
	// ErrDeclined is the expected business outcome of a failed charge.
	// Callers show "try payment again", not "check your connection".
	ErrDeclined      = errors.New("payment declined")
	ErrInvalidAmount = errors.New("amount must be positive")
)

const (
	DefaultDelay       = 1500 * time.Millisecond
	DefaultSuccessRate = 0.9
)

// Simulator models one external charge call: fixed delay, then exactly one
// terminal outcome. No partial state is observable and nothing persists
// before the decision point, so a decline needs no compensation.
//
// Sleep, Now, NewID and Rand are seams for tests; New fills production
// defaults.
type Simulator struct {
	Delay       time.Duration
	SuccessRate float64

	Sleep func(context.Context, time.Duration) error
	Now   func() time.Time
	NewID func() string

	mu  sync.Mutex
	rng *rand.Rand
}

func New(delay time.Duration, successRate float64) *Simulator {
	return &Simulator{
		Delay:       delay,
		SuccessRate: successRate,
		Sleep:       sleepCtx,
		Now:         time.Now,
		NewID:       func() string { return uuid.New().String() },
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand pins the random source, for deterministic tests.
func (s *Simulator) WithRand(rng *rand.Rand) *Simulator {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rng
	return s
}

// Process charges amount from sender to receiver. It resolves exactly once:
// either a completed Transaction echoing the inputs, or ErrDeclined (or the
// context's error if cancelled mid-delay).
func (s *Simulator) Process(ctx context.Context, senderID, receiverID int64, amount float64, referenceID string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if err := s.Sleep(ctx, s.Delay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	roll := s.rng.Float64()
	s.mu.Unlock()

	if roll >= s.SuccessRate {
		return nil, ErrDeclined
	}

	return &domain.Transaction{
		ID:          s.NewID(),
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Amount:      amount,
		Status:      domain.TransactionCompleted,
		ReferenceID: referenceID,
		CreatedAt:   s.Now(),
	}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
