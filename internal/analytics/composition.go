package analytics

import (
	"time"

	"github.com/ashwinvk/spendlens/internal/period"
)

// CompositionPoint splits a day's cumulative spend by transaction size.
type CompositionPoint struct {
	Day             int   `json:"day"`
	CumulativeSmall int64 `json:"cumulativeSmall"`
	CumulativeLarge int64 `json:"cumulativeLarge"`
}

// SpendingComposition tracks how much of the period's cumulative spend came
// from transactions below the size threshold versus at-or-above it. Used on
// explicit-month views; the day axis covers the whole month.
func SpendingComposition(b *Buckets) []CompositionPoint {
	points := make([]CompositionPoint, 0, len(b.Period.Days))

	var small, large int64

	for _, key := range b.Period.Days {
		small += b.SmallByDay[key]
		large += b.LargeByDay[key]

		day, err := time.Parse(period.DayLayout, key)
		if err != nil {
			continue
		}

		points = append(points, CompositionPoint{
			Day:             day.Day(),
			CumulativeSmall: small,
			CumulativeLarge: large,
		})
	}

	return points
}
