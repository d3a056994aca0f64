package db

import (
	"context"
	"fmt"

	"github.com/dcortes/volunteer-hub/internal/models"
)

func (s *Store) CreateNotification(ctx context.Context, n models.Notification) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (user_id, type, title, message)
		VALUES ($1, $2, $3, $4)
	`, n.UserID, n.Type, n.Title, n.Message)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (s *Store) ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, is_read, email_sent, created_at
		FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += " AND is_read = FALSE"
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
			&n.IsRead, &n.EmailSent, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead marks one notification read.
func (s *Store) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE id = $1", notificationID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllNotificationsRead marks every unread notification for a user.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID int64) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE",
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListUnsentNotifications returns the oldest notifications still awaiting
// email delivery, joined with the recipient's address.
func (s *Store) ListUnsentNotifications(ctx context.Context, limit int) ([]models.Notification, map[int64]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT n.id, n.user_id, n.type, n.title, n.message, n.is_read,
		       n.email_sent, n.created_at, u.email
		FROM notifications n
		JOIN users u ON u.id = n.user_id
		WHERE n.email_sent = FALSE
		ORDER BY n.created_at
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query unsent notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	emails := make(map[int64]string)
	for rows.Next() {
		var n models.Notification
		var email string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
			&n.IsRead, &n.EmailSent, &n.CreatedAt, &email); err != nil {
			return nil, nil, fmt.Errorf("failed to scan unsent notification: %w", err)
		}
		notifications = append(notifications, n)
		emails[n.ID] = email
	}
	return notifications, emails, rows.Err()
}

func (s *Store) MarkNotificationSent(ctx context.Context, notificationID int64) error {
	_, err := s.pool.Exec(ctx,
		"UPDATE notifications SET email_sent = TRUE WHERE id = $1", notificationID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}
	return nil
}
