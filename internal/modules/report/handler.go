package report

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

// RegisterRoutes splits the surface: anyone authenticated can file a
// report, only admins see the queue or move statuses.
func (h *Handler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	protected.POST("/reports", h.Create)

	g := admin.Group("/reports")
	{
		g.GET("", h.Queue)
		g.PUT("/:id/status", h.SetStatus)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var in CreateReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rep, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), in)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.BadRequest(c, "Target type and reason are required")
			return
		}
		response.Internal(c, "Failed to file report")
		return
	}
	response.Success(c, http.StatusCreated, rep)
}

func (h *Handler) Queue(c *gin.Context) {
	reports, err := h.service.Queue(c.Request.Context(), c.Query("status"))
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.BadRequest(c, "Unknown report status")
			return
		}
		response.Internal(c, "Failed to load reports")
		return
	}
	response.Success(c, http.StatusOK, reports)
}

func (h *Handler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid report ID")
		return
	}

	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rep, err := h.service.SetStatus(c.Request.Context(), id, in.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Report not found")
		case errors.Is(err, ErrInvalidStatus):
			response.BadRequest(c, "Status must be reviewed or resolved")
		default:
			response.Internal(c, "Failed to update report")
		}
		return
	}
	response.Success(c, http.StatusOK, rep)
}
