package analytics_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinvk/spendlens/internal/analytics"
	"github.com/ashwinvk/spendlens/internal/ledger"
	"github.com/ashwinvk/spendlens/internal/period"
)

var (
	catGroceries = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	catRent      = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	catTransfers = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func debit(amount int64, day time.Time, category *uuid.UUID) *ledger.Transaction {
	return &ledger.Transaction{
		ID:         uuid.New(),
		Amount:     amount,
		Direction:  ledger.DirectionDebit,
		Date:       day,
		CategoryID: category,
	}
}

func credit(amount int64, day time.Time) *ledger.Transaction {
	return &ledger.Transaction{
		ID:        uuid.New(),
		Amount:    amount,
		Direction: ledger.DirectionCredit,
		Date:      day,
	}
}

func march2024(t *testing.T) period.Period {
	t.Helper()

	p, err := period.Resolve("2024-03", date(2024, time.June, 15), nil)
	require.NoError(t, err)

	return p
}

func TestAggregate_BucketsDebitsOnly(t *testing.T) {
	p := march2024(t)

	txns := []*ledger.Transaction{
		debit(10000, date(2024, time.March, 1), &catGroceries),
		debit(20000, date(2024, time.March, 1), &catRent),
		credit(50000, date(2024, time.March, 2)),
	}

	b, err := analytics.Aggregate(txns, p, analytics.Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(30000), b.Total)
	assert.Equal(t, int64(30000), b.ByDay["2024-03-01"])
	assert.Equal(t, int64(0), b.ByDay["2024-03-02"])
	assert.Equal(t, int64(30000), b.ByMonth["2024-03"])

	assert.Equal(t, analytics.CategoryBucket{Sum: 10000, Count: 1}, b.ByCategory[catGroceries])
	assert.Equal(t, analytics.CategoryBucket{Sum: 20000, Count: 1}, b.ByCategory[catRent])
}

func TestAggregate_ZeroFillsEveryDayAndMonth(t *testing.T) {
	p := march2024(t)

	b, err := analytics.Aggregate(nil, p, analytics.Options{})
	require.NoError(t, err)

	assert.Len(t, b.ByDay, 31)
	assert.Len(t, b.SmallByDay, 31)
	assert.Len(t, b.LargeByDay, 31)

	for _, day := range p.Days {
		assert.Contains(t, b.ByDay, day)
		assert.Equal(t, int64(0), b.ByDay[day])
	}

	assert.Equal(t, map[string]int64{"2024-03": 0}, b.ByMonth)
	assert.Equal(t, int64(0), b.Total)
}

func TestAggregate_PeriodBoundariesAreInclusive(t *testing.T) {
	p := march2024(t)

	txns := []*ledger.Transaction{
		debit(100, date(2024, time.March, 1), nil),
		debit(200, date(2024, time.March, 31), nil),
		debit(999, date(2024, time.February, 29), nil),
		debit(999, date(2024, time.April, 1), nil),
	}

	b, err := analytics.Aggregate(txns, p, analytics.Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(300), b.Total)
	assert.Equal(t, int64(100), b.ByDay["2024-03-01"])
	assert.Equal(t, int64(200), b.ByDay["2024-03-31"])
}

func TestAggregate_CapitalTransfers(t *testing.T) {
	p := march2024(t)
	opts := analytics.Options{
		TransferCategories: map[uuid.UUID]struct{}{catTransfers: {}},
	}

	txns := []*ledger.Transaction{
		debit(10000, date(2024, time.March, 5), &catGroceries),
		debit(500000, date(2024, time.March, 6), &catTransfers),
	}

	t.Run("excluded by default", func(t *testing.T) {
		b, err := analytics.Aggregate(txns, p, opts)
		require.NoError(t, err)

		assert.Equal(t, int64(10000), b.Total)
		assert.NotContains(t, b.ByCategory, catTransfers)
	})

	t.Run("included on opt-in", func(t *testing.T) {
		included := opts
		included.IncludeCapitalTransfers = true

		b, err := analytics.Aggregate(txns, p, included)
		require.NoError(t, err)

		assert.Equal(t, int64(510000), b.Total)
		assert.Equal(t, int64(500000), b.ByCategory[catTransfers].Sum)
	})
}

func TestAggregate_SizeSplit(t *testing.T) {
	p := march2024(t)

	txns := []*ledger.Transaction{
		debit(99999, date(2024, time.March, 10), nil),  // just under
		debit(100000, date(2024, time.March, 10), nil), // exactly at threshold counts as large
		debit(250000, date(2024, time.March, 11), nil),
	}

	b, err := analytics.Aggregate(txns, p, analytics.Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(99999), b.SmallByDay["2024-03-10"])
	assert.Equal(t, int64(100000), b.LargeByDay["2024-03-10"])
	assert.Equal(t, int64(250000), b.LargeByDay["2024-03-11"])
}

func TestAggregate_CustomThreshold(t *testing.T) {
	p := march2024(t)

	txns := []*ledger.Transaction{
		debit(4999, date(2024, time.March, 3), nil),
		debit(5000, date(2024, time.March, 3), nil),
	}

	b, err := analytics.Aggregate(txns, p, analytics.Options{SizeThreshold: 5000})
	require.NoError(t, err)

	assert.Equal(t, int64(4999), b.SmallByDay["2024-03-03"])
	assert.Equal(t, int64(5000), b.LargeByDay["2024-03-03"])
}

func TestAggregate_RejectsMalformedRows(t *testing.T) {
	p := march2024(t)

	tests := []struct {
		name string
		tx   *ledger.Transaction
	}{
		{"zero amount", debit(0, date(2024, time.March, 1), nil)},
		{"negative amount", debit(-100, date(2024, time.March, 1), nil)},
		{"date before 1900", debit(100, date(1899, time.December, 31), nil)},
		{"date after 2200", debit(100, date(2201, time.January, 1), nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analytics.Aggregate([]*ledger.Transaction{tt.tx}, p, analytics.Options{})
			assert.ErrorIs(t, err, analytics.ErrDataIntegrity)
		})
	}
}

func TestAggregate_BucketsStayConsistent(t *testing.T) {
	p := march2024(t)

	// Fully categorized input: the day, month and category views must all
	// sum back to the same total.
	txns := []*ledger.Transaction{
		debit(1500, date(2024, time.March, 2), &catGroceries),
		debit(2500, date(2024, time.March, 2), &catRent),
		debit(4000, date(2024, time.March, 17), &catGroceries),
		debit(120000, date(2024, time.March, 28), &catRent),
	}

	b, err := analytics.Aggregate(txns, p, analytics.Options{})
	require.NoError(t, err)

	var byDay, byMonth, byCategory, bySize int64

	for _, v := range b.ByDay {
		byDay += v
	}

	for _, v := range b.ByMonth {
		byMonth += v
	}

	for _, cb := range b.ByCategory {
		byCategory += cb.Sum
	}

	for day := range b.SmallByDay {
		bySize += b.SmallByDay[day] + b.LargeByDay[day]
	}

	assert.Equal(t, b.Total, byDay)
	assert.Equal(t, b.Total, byMonth)
	assert.Equal(t, b.Total, byCategory)
	assert.Equal(t, b.Total, bySize)
}
