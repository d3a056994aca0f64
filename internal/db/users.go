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

// foreignKeyViolation is the Postgres error code for a missing referenced
// row, here a profile upsert for a user that does not exist.
const foreignKeyViolation = "23503"

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		"SELECT id, email, password_hash, role, created_at FROM users WHERE email = $1",
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, email, passwordHash, role string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, email, role, created_at
	`, email, passwordHash, role).Scan(&u.ID, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, email, role, created_at FROM users ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	var p models.Profile
	var availabilityRaw []byte
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, full_name, address, city, state, zip, skills,
		       preferences, availability, updated_at
		FROM user_profiles WHERE user_id = $1
	`, userID).Scan(
		&p.UserID, &p.FullName, &p.Address, &p.City, &p.State, &p.Zip,
		&p.Skills, &p.Preferences, &availabilityRaw, &p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	if len(availabilityRaw) > 0 {
		_ = json.Unmarshal(availabilityRaw, &p.Availability)
	}
	return &p, nil
}

// UpsertProfile creates or replaces a volunteer profile.
func (s *Store) UpsertProfile(ctx context.Context, p models.Profile) error {
	availability, err := json.Marshal(p.Availability)
	if err != nil {
		return fmt.Errorf("failed to encode availability: %w", err)
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO user_profiles (user_id, full_name, address, city, state, zip,
		                           skills, preferences, availability, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip = EXCLUDED.zip,
			skills = EXCLUDED.skills,
			preferences = EXCLUDED.preferences,
			availability = EXCLUDED.availability,
			updated_at = NOW()
	`, p.UserID, p.FullName, p.Address, p.City, p.State, p.Zip,
		p.Skills, p.Preferences, availability)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			// No such user row to attach the profile to.
			return ErrNotFound
		}
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
