package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dcortes/volunteer-hub/internal/db"
	"github.com/dcortes/volunteer-hub/internal/models"
)

func (s *Server) handleListNotifications(c echo.Context) error {
	return s.listNotifications(c, false)
}

func (s *Server) handleUnreadNotifications(c echo.Context) error {
	return s.listNotifications(c, true)
}

func (s *Server) listNotifications(c echo.Context, unreadOnly bool) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	notifications, err := s.Store.ListNotifications(c.Request().Context(), userID, unreadOnly)
	if err != nil {
		return s.internalError(c, err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":       true,
		"notifications": notifications,
	})
}

type markReadRequest struct {
	NotificationID int64 `json:"NotificationID"`
	UserID         int64 `json:"UserID"`
}

// handleMarkNotificationsRead marks a single notification read when
// NotificationID is given, or every unread notification for UserID.
func (s *Server) handleMarkNotificationsRead(c echo.Context) error {
	var req markReadRequest
	if err := c.Bind(&req); err != nil {
		return parseError(c)
	}

	ctx := c.Request().Context()
	switch {
	case req.NotificationID > 0:
		err := s.Store.MarkNotificationRead(ctx, req.NotificationID)
		if errors.Is(err, db.ErrNotFound) {
			return entityNotFound(c, "Notification not found")
		}
		if err != nil {
			return s.internalError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"updated": 1,
		})
	case req.UserID > 0:
		updated, err := s.Store.MarkAllNotificationsRead(ctx, req.UserID)
		if err != nil {
			return s.internalError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"updated": updated,
		})
	default:
		return badRequest(c, "NotificationID or UserID is required")
	}
}
