package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dcortes/volunteer-hub/internal/models"
)

// uniqueViolation is the Postgres error code raised by the partial unique
// index on active (volunteer, event) pairs.
const uniqueViolation = "23505"

func (s *Store) ListMatches(ctx context.Context) ([]models.Match, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT m.id, m.volunteer_id, m.event_id, m.status, m.match_score, m.matched_at,
		       COALESCE(p.full_name, u.email), e.name
		FROM volunteer_matches m
		JOIN users u ON u.id = m.volunteer_id
		LEFT JOIN user_profiles p ON p.user_id = m.volunteer_id
		JOIN events e ON e.id = m.event_id
		ORDER BY m.matched_at DESC, m.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ID, &m.VolunteerID, &m.EventID, &m.Status,
			&m.MatchScore, &m.MatchedAt, &m.VolunteerName, &m.EventName); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// HasActiveMatch reports whether a pending or confirmed match exists for the
// pair.
func (s *Store) HasActiveMatch(ctx context.Context, volunteerID, eventID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM volunteer_matches
			WHERE volunteer_id = $1 AND event_id = $2
			  AND status IN ('pending', 'confirmed')
		)
	`, volunteerID, eventID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing match: %w", err)
	}
	return exists, nil
}

// CreateMatch inserts a pending match and recomputes the event's volunteer
// count in the same transaction. A concurrent duplicate insert trips the
// partial unique index and is reported as ErrDuplicateMatch.
func (s *Store) CreateMatch(ctx context.Context, volunteerID, eventID int64, score float64) (*models.Match, error) {
	exists, err := s.HasActiveMatch(ctx, volunteerID, eventID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateMatch
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var m models.Match
	err = tx.QueryRow(ctx, `
		INSERT INTO volunteer_matches (volunteer_id, event_id, status, match_score)
		VALUES ($1, $2, 'pending', $3)
		RETURNING id, volunteer_id, event_id, status, match_score, matched_at
	`, volunteerID, eventID, score).Scan(
		&m.ID, &m.VolunteerID, &m.EventID, &m.Status, &m.MatchScore, &m.MatchedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateMatch
		}
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}

	if err := recountEventVolunteers(ctx, tx, eventID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit match: %w", err)
	}
	return &m, nil
}

// UpdateMatchStatus transitions a match and recomputes the event's volunteer
// count in the same transaction.
func (s *Store) UpdateMatchStatus(ctx context.Context, matchID int64, status string) (*models.Match, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var m models.Match
	err = tx.QueryRow(ctx, `
		UPDATE volunteer_matches SET status = $2
		WHERE id = $1
		RETURNING id, volunteer_id, event_id, status, match_score, matched_at
	`, matchID, status).Scan(
		&m.ID, &m.VolunteerID, &m.EventID, &m.Status, &m.MatchScore, &m.MatchedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}

	if err := recountEventVolunteers(ctx, tx, m.EventID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status change: %w", err)
	}
	return &m, nil
}

// recountEventVolunteers rewrites the derived current_volunteers aggregate
// from the match table so it cannot drift.
func recountEventVolunteers(ctx context.Context, tx pgx.Tx, eventID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE events SET current_volunteers = (
			SELECT COUNT(*) FROM volunteer_matches
			WHERE event_id = $1 AND status IN ('pending', 'confirmed')
		)
		WHERE id = $1
	`, eventID)
	if err != nil {
		return fmt.Errorf("failed to recount event volunteers: %w", err)
	}
	return nil
}

// ListCandidateProfiles returns active volunteer profiles sharing at least
// one required skill with the event, excluding volunteers who already have an
// active match for it.
func (s *Store) ListCandidateProfiles(ctx context.Context, eventID int64, requiredSkills []string) ([]models.Profile, error) {
	if requiredSkills == nil {
		requiredSkills = []string{}
	}
	rows, err := s.pool.Query(ctx, `
		SELECT p.user_id, p.full_name, p.address, p.city, p.state, p.zip,
		       p.skills, p.preferences, p.availability, p.updated_at
		FROM user_profiles p
		WHERE p.skills && $2
		  AND NOT EXISTS (
			SELECT 1 FROM volunteer_matches m
			WHERE m.volunteer_id = p.user_id AND m.event_id = $1
			  AND m.status IN ('pending', 'confirmed')
		  )
		ORDER BY p.user_id
	`, eventID, requiredSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate profiles: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// ListProfiles returns every volunteer profile, used by smart-match so
// volunteers with no overlapping skills still appear with a zero score.
func (s *Store) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id, full_name, address, city, state, zip,
		       skills, preferences, availability, updated_at
		FROM user_profiles
		ORDER BY user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

func scanProfiles(rows pgx.Rows) ([]models.Profile, error) {
	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		var availabilityRaw []byte
		if err := rows.Scan(&p.UserID, &p.FullName, &p.Address, &p.City,
			&p.State, &p.Zip, &p.Skills, &p.Preferences, &availabilityRaw,
			&p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		if len(availabilityRaw) > 0 {
			_ = json.Unmarshal(availabilityRaw, &p.Availability)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
