package analytics

import (
	"time"

	"github.com/ashwinvk/spendlens/internal/period"
)

// TrendPoint is one day of the cumulative spending trend.
type TrendPoint struct {
	Date            string `json:"date"`
	CumulativeSpend int64  `json:"cumulativeSpend"`
}

// CumulativeTrend is the running sum of daily spend across the period.
// The series is monotone non-decreasing and stops at now's calendar day,
// so an in-progress month never shows flat zero days it hasn't reached.
func CumulativeTrend(b *Buckets, now time.Time) []TrendPoint {
	today := period.DayKey(now)

	points := make([]TrendPoint, 0, len(b.Period.Days))

	var running int64

	for _, day := range b.Period.Days {
		if day > today {
			break
		}

		running += b.ByDay[day]
		points = append(points, TrendPoint{Date: day, CumulativeSpend: running})
	}

	return points
}
