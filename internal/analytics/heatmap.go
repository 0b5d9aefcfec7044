package analytics

// HeatmapPoint is one calendar day's spend for the heatmap grid.
type HeatmapPoint struct {
	Date  string `json:"date"`
	Spend int64  `json:"spend"`
}

// TransactionHeatmap lists every calendar day in the period with its spend.
// Zero-spend days are present with spend 0; the calendar grid renderer
// needs a cell for every day.
func TransactionHeatmap(b *Buckets) []HeatmapPoint {
	points := make([]HeatmapPoint, 0, len(b.Period.Days))

	for _, day := range b.Period.Days {
		points = append(points, HeatmapPoint{Date: day, Spend: b.ByDay[day]})
	}

	return points
}
