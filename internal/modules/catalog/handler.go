package catalog

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

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	g := v1.Group("/courses")
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
	}
}

func (h *Handler) List(c *gin.Context) {
	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to load courses")
		return
	}
	response.Success(c, http.StatusOK, courses)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid course ID")
		return
	}

	course, err := h.service.GetCourse(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Course not found")
			return
		}
		response.Internal(c, "Failed to load course")
		return
	}
	response.Success(c, http.StatusOK, course)
}
