package availability

import (
	"errors"
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
	g := protected.Group("/availability")
	{
		g.POST("", h.Create)
		g.GET("/me", h.ListMine)
		g.GET("/users/:user_id", h.ListForUser)
		g.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var in CreateSlotInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	slot, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.BadRequest(c, "Invalid day or time range")
		case errors.Is(err, ErrOverlap):
			response.Error(c, http.StatusConflict, "SLOT_OVERLAP", "Slot overlaps an existing one")
		default:
			response.Internal(c, "Failed to create slot")
		}
		return
	}
	response.Success(c, http.StatusCreated, slot)
}

func (h *Handler) ListMine(c *gin.Context) {
	slots, err := h.service.ListForUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Internal(c, "Failed to load availability")
		return
	}
	response.Success(c, http.StatusOK, slots)
}

func (h *Handler) ListForUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	slots, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "Failed to load availability")
		return
	}
	response.Success(c, http.StatusOK, slots)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid slot ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Slot not found")
		case errors.Is(err, ErrForbidden):
			response.Forbidden(c, "You do not own this slot")
		default:
			response.Internal(c, "Failed to delete slot")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}
