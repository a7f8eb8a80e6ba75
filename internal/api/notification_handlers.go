package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gohoras/internal/errors"
	"gohoras/models"
)

type notificationRequest struct {
	UserID    string   `json:"userId"`
	UserIDs   []string `json:"userIds"`
	ContestID string   `json:"contestId"`
	Message   string   `json:"message"`
	Type      string   `json:"type"`
}

func (r notificationRequest) contestID() (*uuid.UUID, error) {
	if r.ContestID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(r.ContestID)
	if err != nil {
		return nil, errors.ValidationError("invalid contest id")
	}
	return &id, nil
}

// sendNotification delivers a notification to one user (admin only)
func (s *Server) sendNotification(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.ValidationError("invalid request body"))
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(c, errors.ValidationError("invalid user id"))
		return
	}
	contestID, err := req.contestID()
	if err != nil {
		writeError(c, err)
		return
	}

	n, err := s.notifier.Send(c.Request.Context(), userID, contestID, req.Message, models.NotificationType(req.Type))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// sendBulkNotifications delivers the same notification to many users
// (admin only). Unknown recipients are skipped.
func (s *Server) sendBulkNotifications(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.ValidationError("invalid request body"))
		return
	}

	userIDs := make([]uuid.UUID, 0, len(req.UserIDs))
	for _, raw := range req.UserIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(c, errors.ValidationError("invalid user id: "+raw))
			return
		}
		userIDs = append(userIDs, id)
	}
	contestID, err := req.contestID()
	if err != nil {
		writeError(c, err)
		return
	}

	created, err := s.notifier.SendBulk(c.Request.Context(), userIDs, contestID, req.Message, models.NotificationType(req.Type))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sent": len(created), "notifications": created})
}

// listMyNotifications returns the caller's notifications, newest first
func (s *Server) listMyNotifications(c *gin.Context) {
	notifications, err := s.notifications.ListForUser(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// markNotificationRead marks one of the caller's notifications as read
func (s *Server) markNotificationRead(c *gin.Context) {
	id, ok := parseID(c, "id", "notification")
	if !ok {
		return
	}
	n, err := s.notifier.MarkRead(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// markAllNotificationsRead marks every unread notification for the caller
func (s *Server) markAllNotificationsRead(c *gin.Context) {
	if err := s.notifications.MarkAllRead(c.Request.Context(), currentUser(c).ID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}

// getUnreadCount returns the caller's unread notification count
func (s *Server) getUnreadCount(c *gin.Context) {
	count, err := s.notifications.CountUnread(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
