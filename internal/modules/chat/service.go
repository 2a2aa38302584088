package chat

import (
	"context"
	"strings"
	"time"

	"peerconnect/internal/cache"
	"peerconnect/internal/domain"
	"peerconnect/internal/repository"
)

const conversationTTL = 30 * time.Second

type Service struct {
	messages messageRepo
	cache    *cache.Cache
	notifs   Notifier
	now      func() time.Time
}

func NewService(messages messageRepo, c *cache.Cache, notifs Notifier, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{messages: messages, cache: c, notifs: notifs, now: now}
}

// conversationKey is direction-independent so both participants share one
// cache entry.
func conversationKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return cache.Key("conversation", a, b)
}

// Send persists a message, invalidates the conversation cache and notifies
// the receiver. Notification failure never fails the send.
func (s *Service) Send(ctx context.Context, senderID, receiverID int64, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}

	m := &domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  s.now(),
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, conversationKey(senderID, receiverID))

	if s.notifs != nil {
		preview := content
		// Truncation counts runes so a multi-byte character is never split.
		if r := []rune(preview); len(r) > 80 {
			preview = string(r[:80])
		}
		_ = s.notifs.Notify(ctx, receiverID, domain.NotifyNewMessage, preview,
			map[string]any{"sender_id": senderID, "message_id": m.ID})
	}
	return m, nil
}

// Conversation returns the full history between userID and partnerID,
// oldest first, through the read cache.
func (s *Service) Conversation(ctx context.Context, userID, partnerID int64) ([]domain.Message, error) {
	return cache.Fetch(ctx, s.cache, conversationKey(userID, partnerID), conversationTTL,
		func(ctx context.Context) ([]domain.Message, error) {
			return s.messages.Conversation(ctx, userID, partnerID)
		})
}

// MarkRead flips every unread message from partnerID to userID and drops
// the shared conversation cache entry.
func (s *Service) MarkRead(ctx context.Context, userID, partnerID int64) (int, error) {
	n, err := s.messages.MarkRead(ctx, userID, partnerID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.cache.Invalidate(ctx, conversationKey(userID, partnerID))
	}
	return n, nil
}

// Inbox lists conversation partners with last message and unread count.
func (s *Service) Inbox(ctx context.Context, userID int64) ([]repository.Partner, error) {
	return s.messages.ListPartners(ctx, userID)
}
