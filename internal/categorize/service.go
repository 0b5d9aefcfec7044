// Package categorize assigns categories to transactions based on learned
// description patterns, so imported statement rows arrive pre-categorized.
package categorize

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	FindCategory(ctx context.Context, rawDescription string) (*uuid.UUID, error)
	CreateRule(ctx context.Context, rawPattern string, categoryID uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest finds a category for the given raw description.
// Returns nil when no rule matches.
func (s *Service) Suggest(ctx context.Context, rawDescription string) (*uuid.UUID, error) {
	return s.repo.FindCategory(ctx, rawDescription)
}

// Learn remembers a new pattern-to-category rule for future imports.
func (s *Service) Learn(ctx context.Context, rawPattern string, categoryID uuid.UUID) error {
	return s.repo.CreateRule(ctx, rawPattern, categoryID)
}
