package handlers

import (
	"net/http"

	"brixium.backend/internal/domain/entities"
	"brixium.backend/internal/interfaces/http/middleware"
	"brixium.backend/internal/interfaces/http/response"
	"brixium.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

// NotificationHandler serves in-app notifications to customers and admins
type NotificationHandler struct {
	notificationUsecase *usecases.NotificationUsecase
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationUsecase *usecases.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{notificationUsecase: notificationUsecase}
}

// List returns the caller's notifications. Admins see the admin-only feed.
// GET /api/v1/notifications
// GET /api/v1/admin/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var (
		items []*entities.Notification
		err   error
	)
	if middleware.IsAdmin(c) {
		items, err = h.notificationUsecase.ListForAdmin(c.Request.Context())
	} else {
		items, err = h.notificationUsecase.ListForUser(c.Request.Context(), userID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}
	response.Success(c, http.StatusOK, gin.H{"items": items, "unread": unread})
}

// MarkRead marks one notification as read
// POST /api/v1/notifications/:id/read
// POST /api/v1/admin/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notificationUsecase.MarkRead(c.Request.Context(), id, userID, middleware.IsAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// Message sends an admin message to one customer
// POST /api/v1/admin/users/:id/message
func (h *NotificationHandler) Message(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input entities.AdminMessageInput
	if !bindJSON(c, &input) {
		return
	}

	n, err := h.notificationUsecase.Broadcast(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"notification": n})
}
