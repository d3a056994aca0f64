package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dcortes/volunteer-hub/internal/models"
)

const eventCols = `id, name, description, location, city, state, required_skills,
	urgency, event_date, start_time, end_time, max_volunteers,
	current_volunteers, status, created_at`

func scanEvent(row pgx.Row) (models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Location, &e.City, &e.State,
		&e.RequiredSkills, &e.Urgency, &e.EventDate, &e.StartTime, &e.EndTime,
		&e.MaxVolunteers, &e.CurrentVolunteers, &e.Status, &e.CreatedAt,
	)
	return e, err
}

func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+eventCols+" FROM events ORDER BY event_date, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Store) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	e, err := scanEvent(s.pool.QueryRow(ctx,
		"SELECT "+eventCols+" FROM events WHERE id = $1", id,
	))
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query event: %w", err)
	}
	return &e, nil
}

func (s *Store) CreateEvent(ctx context.Context, e models.Event) (*models.Event, error) {
	if e.RequiredSkills == nil {
		e.RequiredSkills = []string{}
	}
	if e.Status == "" {
		e.Status = models.EventDraft
	}
	created, err := scanEvent(s.pool.QueryRow(ctx, `
		INSERT INTO events (name, description, location, city, state, required_skills,
		                    urgency, event_date, start_time, end_time, max_volunteers, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+eventCols,
		e.Name, e.Description, e.Location, e.City, e.State, e.RequiredSkills,
		e.Urgency, e.EventDate, e.StartTime, e.EndTime, e.MaxVolunteers, e.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}
	return &created, nil
}

func (s *Store) UpdateEvent(ctx context.Context, e models.Event) (*models.Event, error) {
	if e.RequiredSkills == nil {
		e.RequiredSkills = []string{}
	}
	updated, err := scanEvent(s.pool.QueryRow(ctx, `
		UPDATE events SET
			name = $2, description = $3, location = $4, city = $5, state = $6,
			required_skills = $7, urgency = $8, event_date = $9,
			start_time = $10, end_time = $11, max_volunteers = $12
		WHERE id = $1
		RETURNING `+eventCols,
		e.ID, e.Name, e.Description, e.Location, e.City, e.State,
		e.RequiredSkills, e.Urgency, e.EventDate, e.StartTime, e.EndTime,
		e.MaxVolunteers,
	))
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return &updated, nil
}

func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateEventStatus moves an event through its lifecycle. The transition is
// validated by the handler; here we only persist it.
func (s *Store) UpdateEventStatus(ctx context.Context, id int64, status string) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE events SET status = $2 WHERE id = $1", id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
