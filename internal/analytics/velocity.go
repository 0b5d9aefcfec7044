package analytics

import (
	"time"

	"github.com/ashwinvk/spendlens/internal/period"
)

// VelocityPoint aligns three cumulative series on a common day-of-month
// axis. A nil entry means "no data for this day", never zero spend: the
// current month has no data past today, and shorter months have no data
// past their last day.
type VelocityPoint struct {
	Day      int      `json:"day"`
	Current  *float64 `json:"current"`
	Previous *float64 `json:"previous"`
	Average  *float64 `json:"average"`
}

// SpendingVelocity compares the current month's cumulative spend against
// the previous month and the average across the window's completed months.
// Only meaningful for trend windows; the day axis runs 1..31.
func SpendingVelocity(b *Buckets, now time.Time) []VelocityPoint {
	currentMonth := period.MonthKey(now)
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	previousMonth := period.MonthKey(firstOfCurrent.AddDate(0, -1, 0))

	daily := dailyByMonth(b)

	current := cumulativeByDay(daily[currentMonth])
	previous := cumulativeByDay(daily[previousMonth])

	// Historical months are the window's months strictly before the
	// current one; the in-progress month would drag the average down.
	var history []string

	for _, m := range b.Period.Months {
		if m < currentMonth {
			history = append(history, m)
		}
	}

	currentLen := now.Day()
	previousLen := period.DaysInMonth(firstOfCurrent.AddDate(0, -1, 0))
	historyLen := 0

	cumHistory := make([][31]int64, 0, len(history))

	for _, m := range history {
		cumHistory = append(cumHistory, cumulativeByDay(daily[m]))

		if n := daysInMonthKey(m); n > historyLen {
			historyLen = n
		}
	}

	points := make([]VelocityPoint, 0, 31)

	for day := 1; day <= 31; day++ {
		p := VelocityPoint{Day: day}

		if day <= currentLen {
			v := float64(current[day-1])
			p.Current = &v
		}

		if day <= previousLen {
			v := float64(previous[day-1])
			p.Previous = &v
		}

		if day <= historyLen && len(cumHistory) > 0 {
			var sum float64

			for i, m := range history {
				// A month shorter than this day contributes its
				// final total; its spend did not keep growing.
				idx := day
				if n := daysInMonthKey(m); idx > n {
					idx = n
				}

				sum += float64(cumHistory[i][idx-1])
			}

			avg := sum / float64(len(cumHistory))
			p.Average = &avg
		}

		points = append(points, p)
	}

	return points
}

// dailyByMonth regroups the day buckets as month -> day-of-month -> spend.
func dailyByMonth(b *Buckets) map[string][31]int64 {
	grouped := make(map[string][31]int64)

	for key, spend := range b.ByDay {
		day, err := time.Parse(period.DayLayout, key)
		if err != nil {
			continue
		}

		month := period.MonthKey(day)
		arr := grouped[month]
		arr[day.Day()-1] += spend
		grouped[month] = arr
	}

	return grouped
}

func cumulativeByDay(daily [31]int64) [31]int64 {
	var cum [31]int64

	var running int64

	for i := 0; i < 31; i++ {
		running += daily[i]
		cum[i] = running
	}

	return cum
}

func daysInMonthKey(month string) int {
	t, err := time.Parse(period.MonthLayout, month)
	if err != nil {
		return 0
	}

	return period.DaysInMonth(t)
}
