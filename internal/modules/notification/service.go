package notification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"peerconnect/internal/domain"
)

// unreadCheckTimeout bounds the unread-count poll so a slow store cannot
// hang the badge indefinitely; a timed-out cycle is skipped, not surfaced.
const unreadCheckTimeout = 8 * time.Second

type Service struct {
	notifs notificationRepo
	tokens pushTokenReader
	push   PushSender
	log    *zap.Logger
}

// NewService builds the notification service. push may be nil (push
// delivery disabled); tokens is only consulted when push is set.
func NewService(notifs notificationRepo, tokens pushTokenReader, push PushSender, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{notifs: notifs, tokens: tokens, push: push, log: log}
}

// Notify records an in-app notification and fires a best-effort push.
// Push failure never fails the triggering operation.
func (s *Service) Notify(ctx context.Context, userID int64, ntype, content string, data map[string]any) error {
	payload := ""
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err != nil {
			s.log.Warn("notification data not serializable", zap.String("type", ntype), zap.Error(err))
		} else {
			payload = string(raw)
		}
	}

	n := &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      ntype,
		Content:   content,
		Data:      payload,
		CreatedAt: time.Now(),
	}
	if err := s.notifs.Create(ctx, n); err != nil {
		return err
	}

	s.sendPush(ctx, userID, ntype, content, data)
	return nil
}

func (s *Service) sendPush(ctx context.Context, userID int64, ntype, content string, data map[string]any) {
	if s.push == nil || s.tokens == nil {
		return
	}
	profile, err := s.tokens.GetByUserID(ctx, userID)
	if err != nil || profile.PushToken == "" {
		return
	}
	if err := s.push.Send(ctx, profile.PushToken, ntype, content, data); err != nil {
		s.log.Warn("push delivery failed",
			zap.Int64("user_id", userID),
			zap.String("type", ntype),
			zap.Error(err))
	}
}

func (s *Service) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.notifs.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, userID int64, id string) error {
	return s.notifs.MarkRead(ctx, userID, id)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notifs.MarkAllRead(ctx, userID)
}

// UnreadCount is polled by the badge. A timeout or cancellation is a soft
// failure: zero with no error, so the poller just retries next cycle.
func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, unreadCheckTimeout)
	defer cancel()

	count, err := s.notifs.CountUnread(ctx, userID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			s.log.Warn("unread count timed out, skipping cycle", zap.Int64("user_id", userID))
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}
