package api

import (
	"errors"
	"net/http"

	reqdto "exechire/internal/handler/dto/request"
	resdto "exechire/internal/handler/dto/response"
	"exechire/internal/handler/httperr"
	"exechire/internal/usecase/commands"
	"exechire/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
	bookingQueries  queries.BookingQueries
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands, bookingQueries queries.BookingQueries) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Confirm payment
// @Description Confirm the pending payment for a booking; the booking moves to CONFIRMED
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ConfirmPaymentRequest true "Payment confirmation"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/confirm-payment [post]
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing user in context"), "Internal server error")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format")
		return
	}

	var req reqdto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}

	if err := h.paymentCommands.ConfirmPayment(c.Request.Context(), bookingID, req.ProviderRef, actor); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found")
		case errors.Is(err, commands.ErrBookingAccessDenied):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied")
		case errors.Is(err, commands.ErrPaymentNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Payment not found")
		case errors.Is(err, commands.ErrPaymentAlreadyCompleted):
			httperr.AbortWithError(c, http.StatusConflict, err, "Payment already completed")
		case errors.Is(err, commands.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking cannot be confirmed in its current status")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), actor, bookingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	resdto.JSONWithMessage(c, http.StatusOK, resdto.FromBookingView(view), "Payment confirmed")
}
