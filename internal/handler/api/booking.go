package api

import (
	"errors"
	"net/http"

	reqdto "exechire/internal/handler/dto/request"
	resdto "exechire/internal/handler/dto/response"
	"exechire/internal/handler/httperr"
	"exechire/internal/handler/middleware"
	"exechire/internal/usecase/commands"
	"exechire/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Create a new booking; the total price is computed server-side
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing user in context"), "Internal server error")
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}

	view, err := h.bookingCommands.CreateBooking(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrVehicleNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Vehicle not found")
		case errors.Is(err, commands.ErrVehicleUnavailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Vehicle is not available")
		case errors.Is(err, commands.ErrBookingConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Vehicle is already booked for the requested dates")
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid booking dates")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	resdto.JSON(c, http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get booking by ID; non-admins can only read their own bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing user in context"), "Internal server error")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format")
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found")
		case errors.Is(err, queries.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	resdto.JSON(c, http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description List bookings for the current user; admins may list all or filter by user_id
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "Filter by user ID (admin only)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing user in context"), "Internal server error")
		return
	}

	var filterUserID *uuid.UUID
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid user ID format")
			return
		}
		filterUserID = &id
	}

	views, err := h.bookingQueries.List(c.Request.Context(), actor, filterUserID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	resdto.JSON(c, http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Check availability
// @Description Check whether a vehicle is free for a date range
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param vehicle_id query string true "Vehicle ID"
// @Param start_date query string true "Start date (RFC3339)"
// @Param end_date query string true "End date (RFC3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/availability [get]
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var req reqdto.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters")
		return
	}
	if !req.StartDate.Before(req.EndDate) {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("start_date must be before end_date"), "Start date must be before end date")
		return
	}

	view, err := h.bookingQueries.Availability(c.Request.Context(), req.VehicleID, req.StartDate, req.EndDate)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrVehicleNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Vehicle not found")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	resdto.JSON(c, http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Cancel booking
// @Description Cancel a booking; cancelling an already cancelled booking is a no-op
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing user in context"), "Internal server error")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format")
		return
	}

	if err := h.bookingCommands.CancelBooking(c.Request.Context(), id, actor); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found")
		case errors.Is(err, commands.ErrBookingAccessDenied):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied")
		case errors.Is(err, commands.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking can no longer be cancelled")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	resdto.JSONWithMessage(c, http.StatusOK, resdto.FromBookingView(view), "Booking cancelled")
}

func actorFrom(c *gin.Context) (queries.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return queries.Actor{}, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return queries.Actor{}, false
	}
	return queries.Actor{ID: userID, Role: string(role)}, true
}
