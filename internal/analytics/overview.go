package analytics

// MonthSpend names a month together with its total spend.
type MonthSpend struct {
	Month  string `json:"month"`
	Actual int64  `json:"actual"`
}

// Overview summarizes the monthly breakdown into headline figures.
type Overview struct {
	// HighestSpendMonth is nil when no month in scope has nonzero spend.
	// Ties break toward the earliest month.
	HighestSpendMonth *MonthSpend `json:"highestSpendMonth"`

	// AverageSpendPerMonth is the mean over months with recorded spend.
	// Months present in the range but without any matching transaction
	// do not count toward the mean.
	AverageSpendPerMonth float64 `json:"averageSpendPerMonth"`
}

// ComposeOverview folds per-month totals into the overview KPIs. The input
// is expected in calendar order, as MonthlyBreakdown produces it.
func ComposeOverview(monthly []MonthlyPoint) Overview {
	var o Overview

	var sum int64

	var monthsWithData int

	for _, m := range monthly {
		if m.Spend == 0 {
			continue
		}

		sum += m.Spend
		monthsWithData++

		if o.HighestSpendMonth == nil || m.Spend > o.HighestSpendMonth.Actual {
			o.HighestSpendMonth = &MonthSpend{Month: m.Month, Actual: m.Spend}
		}
	}

	if monthsWithData > 0 {
		o.AverageSpendPerMonth = float64(sum) / float64(monthsWithData)
	}

	return o
}

// KPIs are the dashboard's headline numbers for one month.
type KPIs struct {
	TotalSpent        int64   `json:"totalSpent"`
	DailyAverageSpend float64 `json:"dailyAverageSpend"`

	// ProjectedMonthlySpend extrapolates the observed daily rate across
	// the whole month.
	ProjectedMonthlySpend float64 `json:"projectedMonthlySpend"`

	// PercentChangeFromLastMonth is nil when the previous month recorded
	// nothing: there is no comparable baseline, which is not the same
	// as 0% change.
	PercentChangeFromLastMonth *float64 `json:"percentChangeFromLastMonth"`
}

// ComposeKPIs derives the dashboard figures from the current and previous
// period totals. elapsedDays is how many days of the period have passed
// (the full length for a completed month); totalDays is the period length.
func ComposeKPIs(total, previousTotal int64, elapsedDays, totalDays int) KPIs {
	k := KPIs{TotalSpent: total}

	if elapsedDays > 0 {
		k.DailyAverageSpend = float64(total) / float64(elapsedDays)
		k.ProjectedMonthlySpend = k.DailyAverageSpend * float64(totalDays)
	}

	if previousTotal > 0 {
		change := 100 * float64(total-previousTotal) / float64(previousTotal)
		k.PercentChangeFromLastMonth = &change
	}

	return k
}
