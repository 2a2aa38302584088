package booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"peerconnect/internal/domain"
	"peerconnect/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/bookings")
	{
		g.POST("", h.Create)
		g.GET("", h.ListMine)
		g.GET("/:id", h.Get)
		g.POST("/:id/confirm", h.Confirm)
		g.POST("/:id/cancel", h.Cancel)
		g.POST("/:id/escrow", h.PlaceEscrow)
		g.POST("/:id/release", h.ReleaseEscrow)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var in CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.BadRequest(c, "Title, date and a positive price are required")
		case errors.Is(err, ErrSelfBooking):
			response.BadRequest(c, "You cannot book a session with yourself")
		case errors.Is(err, ErrAlreadyBooked):
			response.Error(c, http.StatusConflict, "ALREADY_BOOKED", "This request already has a booking")
		default:
			response.Internal(c, "Failed to create booking")
		}
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) ListMine(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	bookings, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		response.Internal(c, "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	b, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.renderError(c, err, "Failed to load booking")
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Confirm(c *gin.Context) {
	h.transition(c, h.service.Confirm, "Failed to confirm booking")
}

func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel, "Failed to cancel booking")
}

func (h *Handler) PlaceEscrow(c *gin.Context) {
	h.transition(c, h.service.PlaceEscrow, "Failed to place escrow")
}

func (h *Handler) ReleaseEscrow(c *gin.Context) {
	h.transition(c, h.service.ReleaseEscrow, "Failed to release escrow")
}

func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, userID, id int64) (*domain.Booking, error), fallback string) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	b, err := fn(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.renderError(c, err, fallback)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) renderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, "You are not a participant of this booking")
	case errors.Is(err, ErrProviderOnly):
		response.Forbidden(c, "Only the provider may do this")
	case errors.Is(err, ErrRequesterOnly):
		response.Forbidden(c, "Only the requester may do this")
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrNotConfirmed):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Booking is not in the right status")
	case errors.Is(err, ErrInvalidPayment):
		response.Error(c, http.StatusConflict, "INVALID_PAYMENT_STATUS", "Payment is not in the right status")
	case errors.Is(err, ErrPaymentDeclined):
		response.Error(c, http.StatusPaymentRequired, "PAYMENT_DECLINED", "Payment was declined, please try again")
	default:
		response.Internal(c, fallback)
	}
}
