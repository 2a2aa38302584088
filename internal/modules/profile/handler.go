package profile

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"peerconnect/internal/gateway"
	"peerconnect/internal/pkg/response"
)

const maxAvatarBytes = 5 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/profiles")
	{
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.POST("/me/avatar", h.UploadAvatar)
		g.POST("/me/push-token", h.SetPushToken)
		g.POST("/:id/verify", h.SetVerified)
	}
}

func identity(c *gin.Context) gateway.Identity {
	return gateway.Identity{UserID: c.GetInt64("user_id"), Role: c.GetString("role")}
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Profile not found")
			return
		}
		response.Internal(c, "Failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	var req struct {
		FullName string `json:"full_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), identity(c), id, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Forbidden(c, "You cannot modify this profile")
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Profile not found")
		case errors.Is(err, ErrValidation):
			response.BadRequest(c, "Invalid profile data")
		default:
			response.Internal(c, "Failed to update profile")
		}
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) UploadAvatar(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxAvatarBytes))
	if err != nil || len(data) == 0 {
		response.BadRequest(c, "Empty upload")
		return
	}

	url, err := h.service.UploadAvatar(c.Request.Context(), c.GetInt64("user_id"), data, c.ContentType())
	if err != nil {
		response.Internal(c, "Failed to upload avatar")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url})
}

func (h *Handler) SetPushToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.SetPushToken(c.Request.Context(), c.GetInt64("user_id"), req.Token); err != nil {
		response.Internal(c, "Failed to save push token")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) SetVerified(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	var req struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.SetVerified(c.Request.Context(), identity(c), id, *req.Verified); err != nil {
		if errors.Is(err, ErrForbidden) {
			response.Forbidden(c, "Admin access required")
			return
		}
		response.Internal(c, "Failed to update verification")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}
