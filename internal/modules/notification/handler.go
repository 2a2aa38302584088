package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"peerconnect/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/notifications")
	{
		g.GET("", h.List)
		g.GET("/unread-count", h.UnreadCount)
		g.POST("/:id/read", h.MarkRead)
		g.POST("/read-all", h.MarkAllRead)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	notifs, err := h.service.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Internal(c, "Failed to load notifications")
		return
	}
	response.Success(c, http.StatusOK, notifs)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID := c.GetInt64("user_id")
	count, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "Failed to count notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": count})
}

func (h *Handler) MarkRead(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if err := h.service.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Internal(c, "Failed to mark notification read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if err := h.service.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.Internal(c, "Failed to mark notifications read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}
