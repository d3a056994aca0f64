package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateMatch is returned when a (volunteer, event) pair already
	// has a pending or confirmed match.
	ErrDuplicateMatch = errors.New("volunteer is already matched to this event")
)

// Store wraps all Postgres access. Every query is parameterized.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
