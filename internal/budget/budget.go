// Package budget derives pacing and depletion metrics from a monthly
// budget plan and the month's aggregated spend.
package budget

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ashwinvk/spendlens/internal/analytics"
	"github.com/ashwinvk/spendlens/internal/ledger"
	"github.com/ashwinvk/spendlens/internal/period"
)

// atRiskDisplayCount caps the ranked "most at risk" view.
const atRiskDisplayCount = 7

// PacingPoint compares one elapsed day's actual cumulative spend against
// the idealized linear budget-consumption line.
type PacingPoint struct {
	Day         int     `json:"day"`
	ActualSpend int64   `json:"actualSpend"`
	IdealPace   float64 `json:"budgetPace"`
}

// Pacing tracks the month's cumulative spend against an even consumption
// of the total budget. Points cover only elapsed days; for a completed
// month that is the whole month.
func Pacing(b *analytics.Buckets, totalBudget int64, now time.Time) []PacingPoint {
	today := period.DayKey(now)
	perDay := float64(totalBudget) / float64(len(b.Period.Days))

	points := make([]PacingPoint, 0, len(b.Period.Days))

	var running int64

	for _, key := range b.Period.Days {
		if key > today {
			break
		}

		running += b.ByDay[key]
		day := len(points) + 1
		points = append(points, PacingPoint{
			Day:         day,
			ActualSpend: running,
			IdealPace:   float64(day) * perDay,
		})
	}

	return points
}

// CategoryStatus is one category's standing against its monthly limit.
type CategoryStatus struct {
	CategoryID uuid.UUID `json:"categoryId"`
	Category   string    `json:"categoryName"`
	Icon       string    `json:"icon_name"`
	Budget     int64     `json:"budget"`
	Spent      int64     `json:"spent"`
	Remaining  int64     `json:"remaining"`

	// Progress is spend as a percentage of the limit; 0 when no limit
	// is set, never a division by zero.
	Progress float64 `json:"progress"`

	// DaysLeft estimates days until the remaining budget is gone at the
	// current average daily spend. 0 when already depleted; nil when the
	// category has no limit or no spend yet, since a zero rate projects
	// nothing.
	DaysLeft *float64 `json:"daysLeft"`
}

// Statuses computes every category's budget standing for the month. All
// known categories are listed, with a zero limit for those outside the
// plan, sorted by amount spent descending.
func Statuses(plan *ledger.BudgetPlan, b *analytics.Buckets, categories map[uuid.UUID]*ledger.Category, elapsedDays int) []CategoryStatus {
	limits := make(map[uuid.UUID]int64, len(plan.Entries))
	for _, e := range plan.Entries {
		limits[e.CategoryID] = e.Limit
	}

	statuses := make([]CategoryStatus, 0, len(categories))

	for id, cat := range categories {
		st := CategoryStatus{
			CategoryID: id,
			Category:   cat.Name,
			Icon:       cat.Icon,
			Budget:     limits[id],
			Spent:      b.ByCategory[id].Sum,
		}
		st.Remaining = st.Budget - st.Spent

		if st.Budget > 0 {
			st.Progress = 100 * float64(st.Spent) / float64(st.Budget)
			st.DaysLeft = daysLeft(st.Remaining, st.Spent, elapsedDays)
		}

		statuses = append(statuses, st)
	}

	sort.Slice(statuses, func(i, j int) bool {
		if statuses[i].Spent != statuses[j].Spent {
			return statuses[i].Spent > statuses[j].Spent
		}

		return statuses[i].Category < statuses[j].Category
	})

	return statuses
}

func daysLeft(remaining, spent int64, elapsedDays int) *float64 {
	if remaining <= 0 {
		zero := 0.0
		return &zero
	}

	if spent <= 0 || elapsedDays <= 0 {
		return nil
	}

	burnRate := float64(spent) / float64(elapsedDays)
	days := math.Round(float64(remaining) / burnRate)

	return &days
}

// MostAtRisk ranks budgeted categories by how soon their budget runs out,
// soonest first, capped for display. Categories without a projectable
// depletion are excluded.
func MostAtRisk(statuses []CategoryStatus) []CategoryStatus {
	atRisk := make([]CategoryStatus, 0, len(statuses))

	for _, st := range statuses {
		if st.Budget > 0 && st.DaysLeft != nil {
			atRisk = append(atRisk, st)
		}
	}

	sort.Slice(atRisk, func(i, j int) bool {
		if *atRisk[i].DaysLeft != *atRisk[j].DaysLeft {
			return *atRisk[i].DaysLeft < *atRisk[j].DaysLeft
		}

		return atRisk[i].Category < atRisk[j].Category
	})

	if len(atRisk) > atRiskDisplayCount {
		atRisk = atRisk[:atRiskDisplayCount]
	}

	return atRisk
}

// SuggestedBudget pairs a category's recent average spend with its current
// month spend, as a starting point for a new plan.
type SuggestedBudget struct {
	CategoryID      uuid.UUID `json:"categoryId"`
	Category        string    `json:"categoryName"`
	Icon            string    `json:"icon_name"`
	SuggestedAmount int64     `json:"suggestedAmount"`
	CurrentSpend    int64     `json:"currentSpend"`
}

// SetupSuggestion is shown when no plan exists for the month yet.
type SetupSuggestion struct {
	HistoricalSpend   []analytics.MonthlyPoint `json:"historicalSpend"`
	AverageTotalSpend int64                    `json:"averageTotalSpend"`
	SuggestedBudgets  []SuggestedBudget        `json:"suggestedBudgets"`
}

// suggestionLookbackMonths is how far back suggested budgets average over.
const suggestionLookbackMonths = 3

// Suggest builds a plan starting point from the trailing months' spend.
// history covers the lookback window; current covers the plan month so far.
func Suggest(history, current *analytics.Buckets, categories map[uuid.UUID]*ledger.Category) *SetupSuggestion {
	s := &SetupSuggestion{}

	var total int64

	for _, m := range analytics.MonthlyBreakdown(history) {
		if m.Spend == 0 {
			continue
		}

		s.HistoricalSpend = append(s.HistoricalSpend, m)
		total += m.Spend
	}

	if len(s.HistoricalSpend) > 0 {
		s.AverageTotalSpend = total / suggestionLookbackMonths
	}

	for id, cat := range categories {
		s.SuggestedBudgets = append(s.SuggestedBudgets, SuggestedBudget{
			CategoryID:      id,
			Category:        cat.Name,
			Icon:            cat.Icon,
			SuggestedAmount: history.ByCategory[id].Sum / suggestionLookbackMonths,
			CurrentSpend:    current.ByCategory[id].Sum,
		})
	}

	sort.Slice(s.SuggestedBudgets, func(i, j int) bool {
		a, b := s.SuggestedBudgets[i], s.SuggestedBudgets[j]
		if a.CurrentSpend != b.CurrentSpend {
			return a.CurrentSpend > b.CurrentSpend
		}

		if a.SuggestedAmount != b.SuggestedAmount {
			return a.SuggestedAmount > b.SuggestedAmount
		}

		return a.Category < b.Category
	})

	return s
}
