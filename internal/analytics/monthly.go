package analytics

// MonthlyPoint is one calendar month's total spend.
type MonthlyPoint struct {
	Month string `json:"month"`
	Spend int64  `json:"spend"`
}

// MonthlyBreakdown lists every calendar month in the period with its total
// debit spend, in calendar order.
func MonthlyBreakdown(b *Buckets) []MonthlyPoint {
	points := make([]MonthlyPoint, 0, len(b.Period.Months))

	for _, month := range b.Period.Months {
		points = append(points, MonthlyPoint{Month: month, Spend: b.ByMonth[month]})
	}

	return points
}
