package review

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
	g := protected.Group("/reviews")
	{
		g.POST("", h.Create)
		g.GET("/users/:user_id", h.ForUser)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var in CreateReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rv, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.BadRequest(c, "Rating must be between 1 and 5")
		case errors.Is(err, ErrSelfReview):
			response.BadRequest(c, "You cannot review yourself")
		default:
			response.Internal(c, "Failed to post review")
		}
		return
	}
	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) ForUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	summary, err := h.service.ForUser(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "Failed to load reviews")
		return
	}
	response.Success(c, http.StatusOK, summary)
}
