package analytics

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/ashwinvk/spendlens/internal/ledger"
)

// CategoryShare is one category's slice of the period's categorized spend.
type CategoryShare struct {
	CategoryID uuid.UUID `json:"categoryId"`
	Category   string    `json:"category"`
	Icon       string    `json:"icon_name"`
	Total      int64     `json:"total"`
	Percentage float64   `json:"percentage"`
}

// CategoryDistribution computes each spending category's share of the
// period total, sorted by percentage descending. Empty when nothing was
// spent: there is no distribution of zero.
func CategoryDistribution(b *Buckets, categories map[uuid.UUID]*ledger.Category) []CategoryShare {
	var categorizedTotal int64
	for _, cb := range b.ByCategory {
		categorizedTotal += cb.Sum
	}

	if categorizedTotal == 0 {
		return nil
	}

	shares := make([]CategoryShare, 0, len(b.ByCategory))

	for id, cb := range b.ByCategory {
		if cb.Sum == 0 {
			continue
		}

		share := CategoryShare{
			CategoryID: id,
			Total:      cb.Sum,
			Percentage: round2(100 * float64(cb.Sum) / float64(categorizedTotal)),
		}

		if cat, ok := categories[id]; ok {
			share.Category = cat.Name
			share.Icon = cat.Icon
		}

		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Percentage != shares[j].Percentage {
			return shares[i].Percentage > shares[j].Percentage
		}

		return shares[i].Category < shares[j].Category
	})

	return shares
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
