package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"peerconnect/internal/domain"
	"peerconnect/internal/feed"
	"peerconnect/internal/livesync"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

type inboundFrame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type outboundFrame struct {
	Type     string           `json:"type"`
	Messages []domain.Message `json:"messages,omitempty"`
	Message  *domain.Message  `json:"message,omitempty"`
	Code     string           `json:"code,omitempty"`
}

// Session is one live conversation socket. It owns an ordered View of the
// conversation fed by the snapshot, the change feed and the client's own
// optimistic sends, and streams changes back down the socket.
type Session struct {
	userID    int64
	partnerID int64

	conn    *websocket.Conn
	service *Service
	broker  *feed.Broker
	view    *livesync.View[domain.Message]
	sub     *feed.Subscription
	send    chan outboundFrame
	log     *zap.Logger
}

func NewSession(conn *websocket.Conn, service *Service, broker *feed.Broker, userID, partnerID int64, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	member := membership(userID, partnerID)
	return &Session{
		userID:    userID,
		partnerID: partnerID,
		conn:      conn,
		service:   service,
		broker:    broker,
		view: livesync.NewView(
			func(m domain.Message) int64 { return m.ID },
			func(m domain.Message) time.Time { return m.CreatedAt },
			member,
		),
		send: make(chan outboundFrame, sendBuffer),
		log:  log,
	}
}

// membership accepts messages in either direction between the two
// participants and nothing else.
func membership(userID, partnerID int64) func(domain.Message) bool {
	return func(m domain.Message) bool {
		return (m.SenderID == userID && m.ReceiverID == partnerID) ||
			(m.SenderID == partnerID && m.ReceiverID == userID)
	}
}

// Run subscribes, loads the snapshot and drives the read/write pumps. It
// returns when the socket dies; teardown runs on every exit path so late
// feed events after the client disconnects touch nothing.
func (s *Session) Run(ctx context.Context) {
	s.sub = s.broker.Subscribe("messages", s.eventFilter, s.handleEvent)
	defer func() {
		s.broker.Unsubscribe(s.sub)
		s.view.Close()
		s.conn.Close()
	}()

	snapshot, err := s.service.Conversation(ctx, s.userID, s.partnerID)
	if err != nil {
		s.log.Warn("conversation snapshot failed",
			zap.Int64("user_id", s.userID),
			zap.Int64("partner_id", s.partnerID),
			zap.Error(err))
		s.writeFrame(outboundFrame{Type: "error", Code: "SNAPSHOT_FAILED"})
		return
	}
	s.view.SetSnapshot(snapshot)
	s.enqueue(outboundFrame{Type: "snapshot", Messages: s.view.Items()})

	go s.writePump()
	s.readPump(ctx)
}

func (s *Session) eventFilter(ev feed.Event) bool {
	m, ok := ev.Row.(domain.Message)
	if !ok {
		return false
	}
	return membership(s.userID, s.partnerID)(m)
}

func (s *Session) handleEvent(ev feed.Event) {
	m, ok := ev.Row.(domain.Message)
	if !ok {
		return
	}
	switch ev.Type {
	case feed.Insert:
		// Our own sends arrive here too; ApplyInsert de-duplicates by
		// key against the resolved provisional row.
		if s.view.ApplyInsert(m) {
			s.enqueue(outboundFrame{Type: "message", Message: &m})
		}
	case feed.Update:
		if s.view.ApplyUpdate(m) {
			s.enqueue(outboundFrame{Type: "read", Message: &m})
		}
	case feed.Delete:
		s.view.ApplyDelete(m.ID)
	}
}

func (s *Session) readPump(ctx context.Context) {
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("websocket closed unexpectedly", zap.Error(err))
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			s.enqueue(outboundFrame{Type: "error", Code: "BAD_FRAME"})
			continue
		}

		switch frame.Type {
		case "message":
			s.sendMessage(ctx, frame.Content)
		case "read":
			if _, err := s.service.MarkRead(ctx, s.userID, s.partnerID); err != nil {
				s.log.Warn("mark read failed", zap.Error(err))
			}
		default:
			s.enqueue(outboundFrame{Type: "error", Code: "UNKNOWN_FRAME"})
		}
	}
}

// sendMessage does the optimistic write: the message shows up in the view
// immediately under a provisional key, then gets swapped for the persisted
// row (or dropped if the write fails).
func (s *Session) sendMessage(ctx context.Context, content string) {
	now := s.service.now()
	tempKey := s.view.AppendProvisional(func(tempKey int64) domain.Message {
		return domain.Message{
			ID:         tempKey,
			SenderID:   s.userID,
			ReceiverID: s.partnerID,
			Content:    content,
			CreatedAt:  now,
		}
	})

	m, err := s.service.Send(ctx, s.userID, s.partnerID, content)
	if err != nil {
		s.view.DropProvisional(tempKey)
		s.enqueue(outboundFrame{Type: "error", Code: "SEND_FAILED"})
		return
	}

	s.view.ResolveProvisional(tempKey, *m)
	s.enqueue(outboundFrame{Type: "message", Message: m})
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-s.send:
			if !ok {
				return
			}
			if !s.writeFrame(frame) {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Session) writeFrame(frame outboundFrame) bool {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(frame) == nil
}

// enqueue drops frames when the client cannot keep up, same policy the feed
// broker applies to slow subscribers.
func (s *Session) enqueue(frame outboundFrame) {
	select {
	case s.send <- frame:
	default:
		s.log.Warn("chat client too slow, dropping frame",
			zap.Int64("user_id", s.userID),
			zap.String("type", frame.Type))
	}
}
