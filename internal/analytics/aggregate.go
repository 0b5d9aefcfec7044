// Package analytics derives charted metrics from a raw transaction
// snapshot: aggregation buckets, per-chart datasets, and summary KPIs.
// Everything here is a pure computation over immutable inputs; the only
// I/O lives in Service, which fetches the snapshot it derives from.
package analytics

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ashwinvk/spendlens/internal/ledger"
	"github.com/ashwinvk/spendlens/internal/period"
)

var ErrDataIntegrity = errors.New("data integrity violation")

// DefaultSizeThreshold splits transactions into small and large spends
// for the composition chart. Minor currency units.
const DefaultSizeThreshold int64 = 100000

// Options controls which transactions are aggregated and how.
type Options struct {
	// IncludeCapitalTransfers keeps transactions in transfer categories.
	// Off by default: an internal transfer is not spending.
	IncludeCapitalTransfers bool

	// TransferCategories identifies internal transfers between own accounts.
	TransferCategories map[uuid.UUID]struct{}

	// SizeThreshold is the small/large boundary. Zero means DefaultSizeThreshold.
	SizeThreshold int64
}

func (o Options) threshold() int64 {
	if o.SizeThreshold > 0 {
		return o.SizeThreshold
	}

	return DefaultSizeThreshold
}

// CategoryBucket accumulates debit spend for one category.
type CategoryBucket struct {
	Sum   int64
	Count int
}

// Buckets groups a transaction snapshot by day, category and month.
// Day and month maps are zero-filled for every key in the period, so
// derivers never have to distinguish "absent" from "no spend".
type Buckets struct {
	Period period.Period

	ByDay      map[string]int64 // "YYYY-MM-DD" -> debit sum
	ByMonth    map[string]int64 // "YYYY-MM" -> debit sum
	ByCategory map[uuid.UUID]CategoryBucket

	// Small/large split per day, for the composition chart.
	SmallByDay map[string]int64
	LargeByDay map[string]int64

	// Total is the period's overall debit spend.
	Total int64
}

// Aggregate buckets the snapshot over the resolved period. Only debit
// transactions inside [Start, End] count toward spend; credits and (unless
// opted in) capital transfers are skipped. Transactions that are malformed
// rather than merely out of range are rejected.
func Aggregate(txns []*ledger.Transaction, p period.Period, opts Options) (*Buckets, error) {
	b := &Buckets{
		Period:     p,
		ByDay:      make(map[string]int64, len(p.Days)),
		ByMonth:    make(map[string]int64, len(p.Months)),
		ByCategory: make(map[uuid.UUID]CategoryBucket),
		SmallByDay: make(map[string]int64, len(p.Days)),
		LargeByDay: make(map[string]int64, len(p.Days)),
	}

	for _, day := range p.Days {
		b.ByDay[day] = 0
		b.SmallByDay[day] = 0
		b.LargeByDay[day] = 0
	}

	for _, month := range p.Months {
		b.ByMonth[month] = 0
	}

	threshold := opts.threshold()

	for _, tx := range txns {
		if err := validate(tx); err != nil {
			return nil, err
		}

		if tx.Direction != ledger.DirectionDebit {
			continue
		}

		if !opts.IncludeCapitalTransfers && tx.CategoryID != nil {
			if _, transfer := opts.TransferCategories[*tx.CategoryID]; transfer {
				continue
			}
		}

		if !p.Contains(tx.Date) {
			continue
		}

		day := period.DayKey(tx.Date)
		b.ByDay[day] += tx.Amount
		b.ByMonth[period.MonthKey(tx.Date)] += tx.Amount
		b.Total += tx.Amount

		if tx.Amount < threshold {
			b.SmallByDay[day] += tx.Amount
		} else {
			b.LargeByDay[day] += tx.Amount
		}

		if tx.CategoryID != nil {
			cb := b.ByCategory[*tx.CategoryID]
			cb.Sum += tx.Amount
			cb.Count++
			b.ByCategory[*tx.CategoryID] = cb
		}
	}

	return b, nil
}

// validate rejects transactions the bucket maps cannot represent. Dates
// outside any plausible ledger range or non-positive amounts indicate a
// corrupted row, not an empty bucket.
func validate(tx *ledger.Transaction) error {
	if tx.Amount <= 0 {
		return fmt.Errorf("%w: transaction %s has non-positive amount %d", ErrDataIntegrity, tx.ID, tx.Amount)
	}

	year := tx.Date.Year()
	if year < 1900 || year > 2200 {
		return fmt.Errorf("%w: transaction %s dated %s", ErrDataIntegrity, tx.ID, tx.Date.Format(period.DayLayout))
	}

	return nil
}
