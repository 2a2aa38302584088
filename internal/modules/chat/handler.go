package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"peerconnect/internal/feed"
	"peerconnect/internal/pkg/jwt"
	"peerconnect/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origins are vetted by the CORS layer; the token query
	// parameter is the real gate here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	service *Service
	broker  *feed.Broker
	jwt     *jwt.Service
	log     *zap.Logger
}

func NewHandler(service *Service, broker *feed.Broker, jwtService *jwt.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, broker: broker, jwt: jwtService, log: log}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/messages")
	{
		g.GET("", h.Inbox)
		g.GET("/:partner_id", h.Conversation)
		g.POST("/:partner_id", h.Send)
		g.POST("/:partner_id/read", h.MarkRead)
	}
}

// RegisterWS mounts the live conversation socket outside the auth
// middleware; browsers cannot set headers on websocket dials, so the JWT
// rides in the query string instead.
func (h *Handler) RegisterWS(router *gin.Engine) {
	router.GET("/ws/chat/:partner_id", h.Serve)
}

func (h *Handler) Inbox(c *gin.Context) {
	partners, err := h.service.Inbox(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Internal(c, "Failed to load conversations")
		return
	}
	response.Success(c, http.StatusOK, partners)
}

func (h *Handler) Conversation(c *gin.Context) {
	partnerID, err := strconv.ParseInt(c.Param("partner_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid partner ID")
		return
	}

	msgs, err := h.service.Conversation(c.Request.Context(), c.GetInt64("user_id"), partnerID)
	if err != nil {
		response.Internal(c, "Failed to load conversation")
		return
	}
	response.Success(c, http.StatusOK, msgs)
}

func (h *Handler) Send(c *gin.Context) {
	partnerID, err := strconv.ParseInt(c.Param("partner_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid partner ID")
		return
	}

	var in struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	m, err := h.service.Send(c.Request.Context(), c.GetInt64("user_id"), partnerID, in.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			response.BadRequest(c, "Message content is empty")
		case errors.Is(err, ErrSelfMessage):
			response.BadRequest(c, "You cannot message yourself")
		default:
			response.Internal(c, "Failed to send message")
		}
		return
	}
	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) MarkRead(c *gin.Context) {
	partnerID, err := strconv.ParseInt(c.Param("partner_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid partner ID")
		return
	}

	n, err := h.service.MarkRead(c.Request.Context(), c.GetInt64("user_id"), partnerID)
	if err != nil {
		response.Internal(c, "Failed to mark messages read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked": n})
}

func (h *Handler) Serve(c *gin.Context) {
	claims, err := h.jwt.ValidateToken(c.Query("token"))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
		return
	}

	partnerID, err := strconv.ParseInt(c.Param("partner_id"), 10, 64)
	if err != nil || partnerID == claims.UserID {
		response.BadRequest(c, "Invalid partner ID")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	session := NewSession(conn, h.service, h.broker, claims.UserID, partnerID, h.log)
	session.Run(c.Request.Context())
}
