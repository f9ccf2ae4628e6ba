package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/notification"
)

type NotificationHandler struct {
	useCase notification.UseCase
}

func NewNotificationHandler(useCase notification.UseCase) *NotificationHandler {
	return &NotificationHandler{useCase: useCase}
}

// List returns the caller's notifications, newest first.
// @Summary Notifications
// @Tags    notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} notification.Notification
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	items, err := h.useCase.List(c.Context(), identity(c))
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

type unreadCountResponse struct {
	Count int `json:"count"`
}

// UnreadCount
// @Summary Unread notifications count
// @Tags    notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} unreadCountResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.useCase.UnreadCount(c.Context(), identity(c))
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, unreadCountResponse{Count: count})
}

type markAllReadResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}

// MarkAllRead marks every notification of the caller as read.
// @Summary Mark all notifications read
// @Tags    notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} markAllReadResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /notifications/mark-all-read [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	updated, err := h.useCase.MarkAllRead(c.Context(), identity(c))
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, markAllReadResponse{Message: "all notifications marked as read", Updated: updated})
}
