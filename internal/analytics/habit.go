package analytics

import (
	"sort"

	"github.com/google/uuid"

	"github.com/ashwinvk/spendlens/internal/ledger"
)

// Quadrant classifies a category's spending habit by transaction frequency
// crossed with average transaction cost, relative to the period's own means.
type Quadrant string

const (
	QuadrantLowFreqLowCost   Quadrant = "low_frequency_low_cost"
	QuadrantLowFreqHighCost  Quadrant = "low_frequency_high_cost"
	QuadrantHighFreqLowCost  Quadrant = "high_frequency_low_cost"
	QuadrantHighFreqHighCost Quadrant = "high_frequency_high_cost"
)

// HabitPoint describes one category's spending habit in the period.
type HabitPoint struct {
	CategoryID       uuid.UUID `json:"categoryId"`
	Category         string    `json:"category"`
	TransactionCount int       `json:"transaction_count"`
	TotalSpend       int64     `json:"total_spend"`
	AverageSpend     float64   `json:"average_spend"`
	Quadrant         Quadrant  `json:"quadrant"`
}

// HabitIdentifier places each spending category into one of four habit
// quadrants. The thresholds are the period's mean transaction count and
// mean average-spend across categories, not fixed constants, so the
// classification adapts to the user's own scale. A category sitting
// exactly on a mean counts as "high".
func HabitIdentifier(b *Buckets, categories map[uuid.UUID]*ledger.Category) []HabitPoint {
	points := make([]HabitPoint, 0, len(b.ByCategory))

	for id, cb := range b.ByCategory {
		if cb.Count == 0 {
			continue
		}

		p := HabitPoint{
			CategoryID:       id,
			TransactionCount: cb.Count,
			TotalSpend:       cb.Sum,
			AverageSpend:     float64(cb.Sum) / float64(cb.Count),
		}

		if cat, ok := categories[id]; ok {
			p.Category = cat.Name
		}

		points = append(points, p)
	}

	if len(points) == 0 {
		return nil
	}

	var countSum, avgSum float64

	for _, p := range points {
		countSum += float64(p.TransactionCount)
		avgSum += p.AverageSpend
	}

	meanCount := countSum / float64(len(points))
	meanAvg := avgSum / float64(len(points))

	for i := range points {
		highFreq := float64(points[i].TransactionCount) >= meanCount
		highCost := points[i].AverageSpend >= meanAvg

		switch {
		case highFreq && highCost:
			points[i].Quadrant = QuadrantHighFreqHighCost
		case highFreq:
			points[i].Quadrant = QuadrantHighFreqLowCost
		case highCost:
			points[i].Quadrant = QuadrantLowFreqHighCost
		default:
			points[i].Quadrant = QuadrantLowFreqLowCost
		}
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].TotalSpend != points[j].TotalSpend {
			return points[i].TotalSpend > points[j].TotalSpend
		}

		return points[i].Category < points[j].Category
	})

	return points
}
