package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dcortes/volunteer-hub/internal/models"
)

const historyQuery = `
	SELECT h.id, h.volunteer_id, h.event_id, e.name, h.participation,
	       h.hours_served, h.feedback, h.recorded_at
	FROM volunteer_history h
	JOIN events e ON e.id = h.event_id`

// ListHistory returns one volunteer's history, or every record when
// volunteerID is zero.
func (s *Store) ListHistory(ctx context.Context, volunteerID int64) ([]models.HistoryRecord, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if volunteerID == 0 {
		rows, err = s.pool.Query(ctx, historyQuery+" ORDER BY h.recorded_at DESC, h.id DESC")
	} else {
		rows, err = s.pool.Query(ctx,
			historyQuery+" WHERE h.volunteer_id = $1 ORDER BY h.recorded_at DESC, h.id DESC",
			volunteerID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []models.HistoryRecord
	for rows.Next() {
		var r models.HistoryRecord
		if err := rows.Scan(&r.ID, &r.VolunteerID, &r.EventID, &r.EventName,
			&r.Participation, &r.HoursServed, &r.Feedback, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) CreateHistory(ctx context.Context, r models.HistoryRecord) (*models.HistoryRecord, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO volunteer_history (volunteer_id, event_id, participation, hours_served, feedback)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, recorded_at
	`, r.VolunteerID, r.EventID, r.Participation, r.HoursServed, r.Feedback,
	).Scan(&r.ID, &r.RecordedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert history record: %w", err)
	}
	return &r, nil
}

func (s *Store) UpdateHistory(ctx context.Context, r models.HistoryRecord) (*models.HistoryRecord, error) {
	err := s.pool.QueryRow(ctx, `
		UPDATE volunteer_history
		SET participation = $2, hours_served = $3, feedback = $4
		WHERE id = $1
		RETURNING volunteer_id, event_id, recorded_at
	`, r.ID, r.Participation, r.HoursServed, r.Feedback,
	).Scan(&r.VolunteerID, &r.EventID, &r.RecordedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update history record: %w", err)
	}
	return &r, nil
}
