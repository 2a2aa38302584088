package repository

import (
	"context"

	"gorm.io/gorm"

	"peerconnect/internal/domain"
	"peerconnect/internal/feed"
)

type MessageRepository struct {
	db     *gorm.DB
	broker *feed.Broker
}

func NewMessageRepository(db *gorm.DB, broker *feed.Broker) *MessageRepository {
	return &MessageRepository{db: db, broker: broker}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	r.publish(feed.Insert, m)
	return nil
}

// Conversation returns every message between a and b, in either direction,
// ordered by created_at ascending.
func (r *MessageRepository) Conversation(ctx context.Context, a, b int64) ([]domain.Message, error) {
	var msgs []domain.Message
	tx := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at asc").
		Find(&msgs)
	return msgs, tx.Error
}

// MarkRead flips is_read on every unread message sent by senderID to
// readerID and publishes an UPDATE per affected row so live views converge.
func (r *MessageRepository) MarkRead(ctx context.Context, readerID, senderID int64) (int, error) {
	var unread []domain.Message
	tx := r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, readerID, false).
		Find(&unread)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if len(unread) == 0 {
		return 0, nil
	}

	ids := make([]int64, 0, len(unread))
	for _, m := range unread {
		ids = append(ids, m.ID)
	}
	if err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("id IN ?", ids).
		Update("is_read", true).Error; err != nil {
		return 0, err
	}

	for i := range unread {
		unread[i].IsRead = true
		r.publish(feed.Update, &unread[i])
	}
	return len(unread), nil
}

// Partner summarizes one conversation for the inbox list.
type Partner struct {
	UserID      int64          `json:"user_id"`
	LastMessage domain.Message `json:"last_message"`
	Unread      int            `json:"unread"`
}

// ListPartners returns the other endpoint of every conversation userID is
// part of, with the latest message and unread count each.
func (r *MessageRepository) ListPartners(ctx context.Context, userID int64) ([]Partner, error) {
	var msgs []domain.Message
	tx := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at asc").
		Find(&msgs)
	if tx.Error != nil {
		return nil, tx.Error
	}

	latest := make(map[int64]domain.Message)
	unread := make(map[int64]int)
	order := make([]int64, 0)
	for _, m := range msgs {
		other := m.SenderID
		if other == userID {
			other = m.ReceiverID
		}
		if _, seen := latest[other]; !seen {
			order = append(order, other)
		}
		latest[other] = m
		if m.ReceiverID == userID && !m.IsRead {
			unread[other]++
		}
	}

	out := make([]Partner, 0, len(order))
	for _, id := range order {
		out = append(out, Partner{UserID: id, LastMessage: latest[id], Unread: unread[id]})
	}
	return out, nil
}

func (r *MessageRepository) publish(t feed.EventType, m *domain.Message) {
	if r.broker != nil {
		r.broker.Publish(feed.Event{Type: t, Collection: "messages", Row: *m})
	}
}
