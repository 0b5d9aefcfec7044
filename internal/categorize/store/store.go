package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindCategory(ctx context.Context, rawDescription string) (*uuid.UUID, error) {
	query := `
		SELECT category_id
		FROM category_rules
		WHERE $1 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var categoryID uuid.UUID

	err := s.db.QueryRowContext(ctx, query, rawDescription).Scan(&categoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding category rule: %w", err)
	}

	return &categoryID, nil
}

func (s *Store) CreateRule(ctx context.Context, rawPattern string, categoryID uuid.UUID) error {
	query := `
		INSERT INTO category_rules (raw_pattern, category_id, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, rawPattern, categoryID)
	if err != nil {
		return fmt.Errorf("creating category rule: %w", err)
	}

	return nil
}
