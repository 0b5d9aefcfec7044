package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ashwinvk/spendlens/internal/ledger"
	"github.com/ashwinvk/spendlens/internal/period"
)

// Service derives the analytics payloads from a ledger snapshot. It holds
// no state between calls: every request fetches its own snapshot and runs
// the same pure derivations over it, so concurrent invocations never
// interfere.
type Service struct {
	repo ledger.Repository
	opts Options
}

func NewService(repo ledger.Repository, opts Options) *Service {
	return &Service{repo: repo, opts: opts}
}

// Report is the full analytics payload for one period.
type Report struct {
	Overview             Overview           `json:"overview"`
	SpendingVelocity     []VelocityPoint    `json:"spendingVelocity"`
	SpendingComposition  []CompositionPoint `json:"spendingComposition"`
	HabitIdentifier      []HabitPoint       `json:"habitIdentifier"`
	CategoryDistribution []CategoryShare    `json:"categoryDistribution"`
	TransactionHeatmap   []HeatmapPoint     `json:"transactionHeatmap"`
	MonthlyBreakdown     []MonthlyPoint     `json:"monthlyBreakdown"`
}

// Report computes every chart dataset for the given period token. now is
// passed explicitly so the derivation stays deterministic and testable.
func (s *Service) Report(ctx context.Context, token string, includeCapitalTransfers bool, now time.Time) (*Report, error) {
	var earliest *time.Time

	if token == "all" {
		var err error

		earliest, err = s.repo.EarliestTransactionDate(ctx)
		if err != nil {
			return nil, fmt.Errorf("finding earliest transaction: %w", err)
		}
	}

	p, err := period.Resolve(token, now, earliest)
	if err != nil {
		return nil, err
	}

	if p.IsEmpty() {
		return &Report{}, nil
	}

	buckets, categories, err := s.snapshot(ctx, p, includeCapitalTransfers)
	if err != nil {
		return nil, err
	}

	report := &Report{
		HabitIdentifier:      HabitIdentifier(buckets, categories),
		CategoryDistribution: CategoryDistribution(buckets, categories),
		TransactionHeatmap:   TransactionHeatmap(buckets),
	}

	monthly := MonthlyBreakdown(buckets)
	report.Overview = ComposeOverview(monthly)

	if p.Monthly {
		report.SpendingComposition = SpendingComposition(buckets)
	} else {
		report.SpendingVelocity = SpendingVelocity(buckets, now)
		report.MonthlyBreakdown = monthly
	}

	return report, nil
}

// Dashboard is the KPI payload for one explicit month.
type Dashboard struct {
	KPIs
	TopSpendingCategories []TopCategory       `json:"topSpendingCategories"`
	SpendingTrend         []TrendPoint        `json:"spendingTrend"`
	RecentTransactions    []RecentTransaction `json:"recentTransactions"`
}

// TopCategory is one of the month's largest spending categories.
type TopCategory struct {
	CategoryID uuid.UUID `json:"id"`
	Category   string    `json:"category"`
	Amount     int64     `json:"amount"`
	Icon       string    `json:"icon_name"`
}

// RecentTransaction is a ledger row trimmed for the dashboard list.
type RecentTransaction struct {
	ID          uuid.UUID        `json:"id"`
	Description string           `json:"description"`
	Amount      int64            `json:"amount"`
	Direction   ledger.Direction `json:"direction"`
	Date        string           `json:"txn_date"`
	CategoryID  *uuid.UUID       `json:"category_id"`
}

const (
	topCategoryCount       = 5
	recentTransactionCount = 5
)

// Dashboard computes the month's KPI payload. The month token must name an
// explicit calendar month.
func (s *Service) Dashboard(ctx context.Context, month string, now time.Time) (*Dashboard, error) {
	p, err := period.Resolve(month, now, nil)
	if err != nil {
		return nil, err
	}

	if !p.Monthly {
		return nil, fmt.Errorf("%w: %q is not a calendar month", period.ErrInvalidPeriod, month)
	}

	buckets, categories, err := s.snapshot(ctx, p, false)
	if err != nil {
		return nil, err
	}

	// Previous month total for the percent-change baseline.
	prevStart := p.Start.AddDate(0, -1, 0)
	prevPeriod, err := period.Resolve(period.MonthKey(prevStart), now, nil)
	if err != nil {
		return nil, err
	}

	prevBuckets, _, err := s.snapshot(ctx, prevPeriod, false)
	if err != nil {
		return nil, err
	}

	elapsed := len(p.Days)
	if period.MonthKey(now) == month {
		elapsed = now.Day()
	}

	d := &Dashboard{
		KPIs:                  ComposeKPIs(buckets.Total, prevBuckets.Total, elapsed, len(p.Days)),
		TopSpendingCategories: topCategories(buckets, categories),
		SpendingTrend:         CumulativeTrend(buckets, now),
	}

	recent, err := s.repo.ListTransactions(ctx, ledger.ListFilter{
		Limit:  recentTransactionCount,
		Newest: true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing recent transactions: %w", err)
	}

	d.RecentTransactions = make([]RecentTransaction, 0, len(recent))
	for _, tx := range recent {
		d.RecentTransactions = append(d.RecentTransactions, RecentTransaction{
			ID:          tx.ID,
			Description: tx.Description,
			Amount:      tx.Amount,
			Direction:   tx.Direction,
			Date:        tx.Date.Format(period.DayLayout),
			CategoryID:  tx.CategoryID,
		})
	}

	return d, nil
}

// snapshot fetches the period's transactions and categories and buckets them.
func (s *Service) snapshot(ctx context.Context, p period.Period, includeCapitalTransfers bool) (*Buckets, map[uuid.UUID]*ledger.Category, error) {
	txns, err := s.repo.ListTransactions(ctx, ledger.ListFilter{
		StartDate: &p.Start,
		EndDate:   &p.End,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("listing transactions: %w", err)
	}

	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing categories: %w", err)
	}

	categories := make(map[uuid.UUID]*ledger.Category, len(cats))
	for _, c := range cats {
		categories[c.ID] = c
	}

	opts := s.opts
	opts.IncludeCapitalTransfers = includeCapitalTransfers

	buckets, err := Aggregate(txns, p, opts)
	if err != nil {
		return nil, nil, err
	}

	return buckets, categories, nil
}

func topCategories(b *Buckets, categories map[uuid.UUID]*ledger.Category) []TopCategory {
	top := make([]TopCategory, 0, len(b.ByCategory))

	for id, cb := range b.ByCategory {
		if cb.Sum == 0 {
			continue
		}

		tc := TopCategory{CategoryID: id, Amount: cb.Sum}
		if cat, ok := categories[id]; ok {
			tc.Category = cat.Name
			tc.Icon = cat.Icon
		}

		top = append(top, tc)
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].Amount != top[j].Amount {
			return top[i].Amount > top[j].Amount
		}

		return top[i].Category < top[j].Category
	})

	if len(top) > topCategoryCount {
		top = top[:topCategoryCount]
	}

	return top
}
