package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinvk/spendlens/internal/analytics"
)

func TestComposeOverview(t *testing.T) {
	monthly := []analytics.MonthlyPoint{
		{Month: "2024-01", Spend: 100000},
		{Month: "2024-02", Spend: 0},
		{Month: "2024-03", Spend: 200000},
	}

	o := analytics.ComposeOverview(monthly)

	require.NotNil(t, o.HighestSpendMonth)
	assert.Equal(t, analytics.MonthSpend{Month: "2024-03", Actual: 200000}, *o.HighestSpendMonth)

	// February recorded nothing and does not dilute the average.
	assert.Equal(t, float64(150000), o.AverageSpendPerMonth)
}

func TestComposeOverview_TieBreaksToEarliestMonth(t *testing.T) {
	monthly := []analytics.MonthlyPoint{
		{Month: "2024-01", Spend: 5000},
		{Month: "2024-02", Spend: 5000},
	}

	o := analytics.ComposeOverview(monthly)

	require.NotNil(t, o.HighestSpendMonth)
	assert.Equal(t, "2024-01", o.HighestSpendMonth.Month)
}

func TestComposeOverview_NoSpend(t *testing.T) {
	monthly := []analytics.MonthlyPoint{
		{Month: "2024-01", Spend: 0},
		{Month: "2024-02", Spend: 0},
	}

	o := analytics.ComposeOverview(monthly)

	assert.Nil(t, o.HighestSpendMonth)
	assert.Equal(t, float64(0), o.AverageSpendPerMonth)
}

func TestComposeKPIs(t *testing.T) {
	k := analytics.ComposeKPIs(30000, 20000, 10, 30)

	assert.Equal(t, int64(30000), k.TotalSpent)
	assert.Equal(t, float64(3000), k.DailyAverageSpend)
	assert.Equal(t, float64(90000), k.ProjectedMonthlySpend)

	require.NotNil(t, k.PercentChangeFromLastMonth)
	assert.Equal(t, float64(50), *k.PercentChangeFromLastMonth)
}

func TestComposeKPIs_NoBaseline(t *testing.T) {
	k := analytics.ComposeKPIs(30000, 0, 10, 30)

	// A zero previous month is no baseline, not a 0% change.
	assert.Nil(t, k.PercentChangeFromLastMonth)
}

func TestComposeKPIs_Decrease(t *testing.T) {
	k := analytics.ComposeKPIs(10000, 40000, 30, 30)

	require.NotNil(t, k.PercentChangeFromLastMonth)
	assert.Equal(t, float64(-75), *k.PercentChangeFromLastMonth)
}

func TestComposeKPIs_ZeroElapsedDays(t *testing.T) {
	k := analytics.ComposeKPIs(0, 0, 0, 30)

	assert.Equal(t, float64(0), k.DailyAverageSpend)
	assert.Equal(t, float64(0), k.ProjectedMonthlySpend)
}
