package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinvk/spendlens/internal/period"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_RelativeWindows(t *testing.T) {
	now := time.Date(2024, time.June, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name       string
		token      string
		wantStart  time.Time
		wantMonths []string
	}{
		{
			name:       "3m",
			token:      "3m",
			wantStart:  date(2024, time.April, 1),
			wantMonths: []string{"2024-04", "2024-05", "2024-06"},
		},
		{
			name:       "6m",
			token:      "6m",
			wantStart:  date(2024, time.January, 1),
			wantMonths: []string{"2024-01", "2024-02", "2024-03", "2024-04", "2024-05", "2024-06"},
		},
		{
			name:      "1y",
			token:     "1y",
			wantStart: date(2023, time.July, 1),
			wantMonths: []string{
				"2023-07", "2023-08", "2023-09", "2023-10", "2023-11", "2023-12",
				"2024-01", "2024-02", "2024-03", "2024-04", "2024-05", "2024-06",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := period.Resolve(tt.token, now, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, date(2024, time.June, 15), p.End)
			assert.Equal(t, tt.wantMonths, p.Months)
			assert.False(t, p.Monthly)

			assert.Equal(t, "2024-06-15", p.Days[len(p.Days)-1])
		})
	}
}

func TestResolve_ExplicitMonth(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		token    string
		wantDays int
	}{
		{"2024-02", 29}, // leap year
		{"2023-02", 28},
		{"2024-04", 30},
		{"2024-01", 31},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			p, err := period.Resolve(tt.token, now, nil)
			require.NoError(t, err)

			assert.Len(t, p.Days, tt.wantDays)
			assert.True(t, p.Monthly)
			assert.Equal(t, []string{tt.token}, p.Months)
			assert.Equal(t, tt.token+"-01", p.Days[0])
		})
	}
}

func TestResolve_All(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("SpansFromEarliest", func(t *testing.T) {
		earliest := date(2024, time.May, 20)

		p, err := period.Resolve("all", now, &earliest)
		require.NoError(t, err)

		assert.Equal(t, earliest, p.Start)
		assert.Equal(t, date(2024, time.June, 15), p.End)
		assert.Len(t, p.Days, 27)
		assert.Equal(t, []string{"2024-05", "2024-06"}, p.Months)
	})

	t.Run("EmptyLedger", func(t *testing.T) {
		p, err := period.Resolve("all", now, nil)
		require.NoError(t, err)

		assert.True(t, p.IsEmpty())
	})
}

func TestResolve_InvalidToken(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	for _, token := range []string{"", "7m", "2024", "2024-13", "20-01", "yesterday", "2024-02-01"} {
		t.Run(token, func(t *testing.T) {
			_, err := period.Resolve(token, now, nil)
			assert.ErrorIs(t, err, period.ErrInvalidPeriod)
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	now := time.Date(2024, time.February, 29, 8, 0, 0, 0, time.UTC)

	first, err := period.Resolve("6m", now, nil)
	require.NoError(t, err)

	second, err := period.Resolve("6m", now, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolve_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, time.June, 15, 0, 1, 0, 0, time.UTC)
	night := time.Date(2024, time.June, 15, 23, 59, 0, 0, time.UTC)

	a, err := period.Resolve("3m", morning, nil)
	require.NoError(t, err)

	b, err := period.Resolve("3m", night, nil)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestContains(t *testing.T) {
	p, err := period.Resolve("2024-02", time.Now().UTC(), nil)
	require.NoError(t, err)

	assert.True(t, p.Contains(date(2024, time.February, 1)))
	assert.True(t, p.Contains(date(2024, time.February, 29)))
	assert.False(t, p.Contains(date(2024, time.March, 1)))
	assert.False(t, p.Contains(date(2024, time.January, 31)))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, period.DaysInMonth(date(2024, time.February, 10)))
	assert.Equal(t, 28, period.DaysInMonth(date(2023, time.February, 10)))
	assert.Equal(t, 31, period.DaysInMonth(date(2024, time.December, 1)))
	assert.Equal(t, 30, period.DaysInMonth(date(2024, time.November, 30)))
}
