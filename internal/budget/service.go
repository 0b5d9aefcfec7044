package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ashwinvk/spendlens/internal/analytics"
	"github.com/ashwinvk/spendlens/internal/ledger"
	"github.com/ashwinvk/spendlens/internal/period"
)

type Service struct {
	repo ledger.Repository
	opts analytics.Options
}

func NewService(repo ledger.Repository, opts analytics.Options) *Service {
	return &Service{repo: repo, opts: opts}
}

// MonitorResult carries either the month's plan standing or, when no plan
// exists yet, a setup suggestion.
type MonitorResult struct {
	Plan       []CategoryStatus `json:"plan"`
	PacingData []PacingPoint    `json:"pacingData,omitempty"`
	MostAtRisk []CategoryStatus `json:"mostAtRisk,omitempty"`
	Historical *SetupSuggestion `json:"historicalData"`
}

// Monitor reports the month's budget standing: per-category statuses,
// the pacing series and the depletion ranking when a plan exists, or a
// suggestion to start one when it does not.
func (s *Service) Monitor(ctx context.Context, month string, now time.Time) (*MonitorResult, error) {
	p, err := period.Resolve(month, now, nil)
	if err != nil {
		return nil, err
	}

	if !p.Monthly {
		return nil, fmt.Errorf("%w: %q is not a calendar month", period.ErrInvalidPeriod, month)
	}

	plan, err := s.repo.GetBudgetPlan(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("getting budget plan: %w", err)
	}

	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, err
	}

	buckets, err := s.aggregateRange(ctx, p)
	if err != nil {
		return nil, err
	}

	if plan == nil {
		historyEnd := p.Start.AddDate(0, 0, -1)
		historyStart := p.Start.AddDate(0, -suggestionLookbackMonths, 0)

		history, err := s.aggregateRange(ctx, period.Range(historyStart, historyEnd))
		if err != nil {
			return nil, err
		}

		return &MonitorResult{Historical: Suggest(history, buckets, categories)}, nil
	}

	elapsed := len(p.Days)
	if period.MonthKey(now) == month {
		elapsed = now.Day()
	}

	statuses := Statuses(plan, buckets, categories, elapsed)

	return &MonitorResult{
		Plan:       statuses,
		PacingData: Pacing(buckets, plan.TotalBudget(), now),
		MostAtRisk: MostAtRisk(statuses),
	}, nil
}

// Save validates and stores the month's plan, replacing any existing one.
func (s *Service) Save(ctx context.Context, plan *ledger.BudgetPlan) error {
	if _, err := time.Parse(period.MonthLayout, plan.Month); err != nil {
		return fmt.Errorf("%w: %q", period.ErrInvalidPeriod, plan.Month)
	}

	seen := make(map[uuid.UUID]struct{}, len(plan.Entries))

	for _, e := range plan.Entries {
		if e.Limit < 0 {
			return fmt.Errorf("budget for category %s is negative", e.CategoryID)
		}

		if _, dup := seen[e.CategoryID]; dup {
			return fmt.Errorf("category %s appears twice in plan", e.CategoryID)
		}

		seen[e.CategoryID] = struct{}{}
	}

	return s.repo.PutBudgetPlan(ctx, plan)
}

func (s *Service) Delete(ctx context.Context, month string) error {
	if _, err := time.Parse(period.MonthLayout, month); err != nil {
		return fmt.Errorf("%w: %q", period.ErrInvalidPeriod, month)
	}

	return s.repo.DeleteBudgetPlan(ctx, month)
}

func (s *Service) categoryMap(ctx context.Context) (map[uuid.UUID]*ledger.Category, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	categories := make(map[uuid.UUID]*ledger.Category, len(cats))
	for _, c := range cats {
		categories[c.ID] = c
	}

	return categories, nil
}

func (s *Service) aggregateRange(ctx context.Context, p period.Period) (*analytics.Buckets, error) {
	txns, err := s.repo.ListTransactions(ctx, ledger.ListFilter{
		StartDate: &p.Start,
		EndDate:   &p.End,
	})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	buckets, err := analytics.Aggregate(txns, p, s.opts)
	if err != nil {
		return nil, err
	}

	return buckets, nil
}
