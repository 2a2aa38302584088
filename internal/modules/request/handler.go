package request

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
	g := protected.Group("/requests")
	{
		g.POST("", h.Create)
		g.GET("", h.Browse)
		g.GET("/mine", h.ListMine)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
		g.POST("/:id/assign", h.Assign)
		g.POST("/:id/complete", h.Complete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var in CreateRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	req, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), in)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.BadRequest(c, "Title and course are required")
			return
		}
		response.Internal(c, "Failed to create request")
		return
	}
	response.Success(c, http.StatusCreated, req)
}

func (h *Handler) Browse(c *gin.Context) {
	courseID, _ := strconv.ParseInt(c.Query("course_id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	views, err := h.service.Browse(c.Request.Context(), BrowseFilter{
		CourseID: courseID,
		Tag:      c.Query("tag"),
		Search:   c.Query("q"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		response.Internal(c, "Failed to load requests")
		return
	}
	response.Success(c, http.StatusOK, views)
}

func (h *Handler) ListMine(c *gin.Context) {
	views, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Internal(c, "Failed to load requests")
		return
	}
	response.Success(c, http.StatusOK, views)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid request ID")
		return
	}

	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Request not found")
			return
		}
		response.Internal(c, "Failed to load request")
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid request ID")
		return
	}

	var in UpdateRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	req, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, in)
	if err != nil {
		h.renderError(c, err, "Failed to update request")
		return
	}
	response.Success(c, http.StatusOK, req)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid request ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.renderError(c, err, "Failed to delete request")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Assign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid request ID")
		return
	}

	req, err := h.service.Assign(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfAssignment):
			response.BadRequest(c, "You cannot take your own request")
		case errors.Is(err, ErrAlreadyAssigned):
			response.Error(c, http.StatusConflict, "ALREADY_ASSIGNED", "Request is already taken")
		default:
			h.renderError(c, err, "Failed to assign request")
		}
		return
	}
	response.Success(c, http.StatusOK, req)
}

func (h *Handler) Complete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid request ID")
		return
	}

	req, err := h.service.Complete(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.Error(c, http.StatusConflict, "INVALID_STATUS", "Request cannot be completed from its current status")
			return
		}
		h.renderError(c, err, "Failed to complete request")
		return
	}
	response.Success(c, http.StatusOK, req)
}

func (h *Handler) renderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Request not found")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, "You do not own this request")
	case errors.Is(err, ErrValidation):
		response.BadRequest(c, "Invalid request data")
	default:
		response.Internal(c, fallback)
	}
}
