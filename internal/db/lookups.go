package db

import (
	"context"
	"fmt"
)

// State is a row of the states lookup table.
type State struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (s *Store) ListStates(ctx context.Context) ([]State, error) {
	rows, err := s.pool.Query(ctx, "SELECT code, name FROM states ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query states: %w", err)
	}
	defer rows.Close()

	var states []State
	for rows.Next() {
		var st State
		if err := rows.Scan(&st.Code, &st.Name); err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		states = append(states, st)
	}
	return states, rows.Err()
}

func (s *Store) ListSkills(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, "SELECT name FROM skills ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()

	var skills []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, name)
	}
	return skills, rows.Err()
}
