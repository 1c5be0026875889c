package api

import (
	"errors"
	"net/http"

	resdto "exechire/internal/handler/dto/response"
	"exechire/internal/handler/httperr"
	"exechire/internal/handler/middleware"
	"exechire/internal/usecase/commands"
	"exechire/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notificationCommands commands.NotificationCommands
	notificationQueries  queries.NotificationQueries
}

func NewNotificationHandler(notificationCommands commands.NotificationCommands, notificationQueries queries.NotificationQueries) *NotificationHandler {
	return &NotificationHandler{
		notificationCommands: notificationCommands,
		notificationQueries:  notificationQueries,
	}
}

// @Summary List notifications
// @Description List notifications for the current user, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.NotificationResponse
// @Failure 401 {object} httperr.Response
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing user in context"), "Internal server error")
		return
	}

	views, err := h.notificationQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	resdto.JSON(c, http.StatusOK, resdto.FromNotificationViews(views))
}

// @Summary Mark notification read
// @Description Mark one of the current user's notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing user in context"), "Internal server error")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid notification ID format")
		return
	}

	if err := h.notificationCommands.MarkRead(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, commands.ErrNotificationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Notification not found")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
