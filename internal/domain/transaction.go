package domain

import "time"

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is the outcome of a simulated payment call. It is never
// persisted; callers hold the only copy.
type Transaction struct {
	ID          string            `json:"id"`
	SenderID    int64             `json:"sender_id"`
	ReceiverID  int64             `json:"receiver_id"`
	Amount      float64           `json:"amount"`
	Status      TransactionStatus `json:"status"`
	ReferenceID string            `json:"reference_id,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
