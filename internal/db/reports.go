package db

import (
	"context"
	"fmt"
	"time"

	"github.com/dcortes/volunteer-hub/internal/models"
)

// ReportParams holds the optional filters shared by the report queries. All
// filters are bound as parameters, never interpolated.
type ReportParams struct {
	From   *time.Time
	To     *time.Time
	Status string
}

func (p ReportParams) clauses(dateCol, statusCol string) (string, []interface{}) {
	where := ""
	var args []interface{}
	argIdx := 1

	add := func(cond string, val interface{}) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, argIdx)
		args = append(args, val)
		argIdx++
	}

	if p.From != nil {
		add(dateCol+" >= $%d", *p.From)
	}
	if p.To != nil {
		add(dateCol+" <= $%d", *p.To)
	}
	if p.Status != "" && statusCol != "" {
		add(statusCol+" = $%d", p.Status)
	}
	return where, args
}

func (s *Store) VolunteerParticipationReport(ctx context.Context, params ReportParams) ([]models.ParticipationRow, error) {
	where, args := params.clauses("h.recorded_at", "")
	rows, err := s.pool.Query(ctx, `
		SELECT u.id, COALESCE(p.full_name, u.email),
		       COUNT(h.id), COALESCE(SUM(h.hours_served), 0)
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		JOIN volunteer_history h ON h.volunteer_id = u.id`+where+`
		GROUP BY u.id, COALESCE(p.full_name, u.email)
		ORDER BY COUNT(h.id) DESC, u.id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query participation report: %w", err)
	}
	defer rows.Close()

	var report []models.ParticipationRow
	for rows.Next() {
		var r models.ParticipationRow
		if err := rows.Scan(&r.VolunteerID, &r.VolunteerName, &r.EventsJoined, &r.TotalHours); err != nil {
			return nil, fmt.Errorf("failed to scan participation row: %w", err)
		}
		report = append(report, r)
	}
	return report, rows.Err()
}

func (s *Store) EventSummaryReport(ctx context.Context, params ReportParams) ([]models.EventSummaryRow, error) {
	where, args := params.clauses("e.event_date", "e.status")
	rows, err := s.pool.Query(ctx, `
		SELECT e.id, e.name, e.event_date, e.status, e.urgency, e.max_volunteers,
		       COUNT(m.id) FILTER (WHERE m.status IN ('pending', 'confirmed')),
		       COUNT(m.id) FILTER (WHERE m.status = 'confirmed')
		FROM events e
		LEFT JOIN volunteer_matches m ON m.event_id = e.id`+where+`
		GROUP BY e.id
		ORDER BY e.event_date, e.id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query event summary: %w", err)
	}
	defer rows.Close()

	var report []models.EventSummaryRow
	for rows.Next() {
		var r models.EventSummaryRow
		if err := rows.Scan(&r.EventID, &r.EventName, &r.EventDate, &r.Status,
			&r.Urgency, &r.MaxVolunteers, &r.Matched, &r.Confirmed); err != nil {
			return nil, fmt.Errorf("failed to scan event summary row: %w", err)
		}
		report = append(report, r)
	}
	return report, rows.Err()
}

func (s *Store) VolunteerSummaryReport(ctx context.Context, params ReportParams) ([]models.VolunteerSummaryRow, error) {
	where, args := params.clauses("m.matched_at", "")
	rows, err := s.pool.Query(ctx, `
		SELECT u.id, COALESCE(p.full_name, u.email),
		       COUNT(m.id) FILTER (WHERE m.status = 'pending'),
		       COUNT(m.id) FILTER (WHERE m.status = 'confirmed'),
		       COUNT(m.id) FILTER (WHERE m.status = 'declined'),
		       COALESCE(AVG(m.match_score), 0)
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		JOIN volunteer_matches m ON m.volunteer_id = u.id`+where+`
		GROUP BY u.id, COALESCE(p.full_name, u.email)
		ORDER BY u.id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteer summary: %w", err)
	}
	defer rows.Close()

	var report []models.VolunteerSummaryRow
	for rows.Next() {
		var r models.VolunteerSummaryRow
		if err := rows.Scan(&r.VolunteerID, &r.VolunteerName, &r.PendingMatches,
			&r.Confirmed, &r.Declined, &r.AvgMatchScore); err != nil {
			return nil, fmt.Errorf("failed to scan volunteer summary row: %w", err)
		}
		report = append(report, r)
	}
	return report, rows.Err()
}
