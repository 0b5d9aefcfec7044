// Package export renders ledger ranges as CSV for download.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"

	"github.com/ashwinvk/spendlens/internal/ledger"
	"github.com/ashwinvk/spendlens/internal/period"
)

type Service struct {
	transactions *ledger.Service
}

func NewService(txService *ledger.Service) *Service {
	return &Service{transactions: txService}
}

var header = []string{"date", "description", "direction", "amount", "category"}

// Export writes transactions matching the filter as CSV. Amounts are
// rendered in major units with two decimals; categories by name.
func (s *Service) Export(ctx context.Context, filter ledger.ListFilter, w io.Writer) (int, error) {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	names, err := s.categoryNames(ctx)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		category := ""
		if tx.CategoryID != nil {
			category = names[*tx.CategoryID]
		}

		record := []string{
			tx.Date.Format(period.DayLayout),
			tx.Description,
			string(tx.Direction),
			formatAmount(tx.Amount),
			category,
		}

		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(txs), nil
}

func (s *Service) categoryNames(ctx context.Context) (map[uuid.UUID]string, error) {
	cats, err := s.transactions.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	names := make(map[uuid.UUID]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	return names, nil
}

// formatAmount renders minor units as a major-unit decimal string.
func formatAmount(minor int64) string {
	major := minor / 100
	cents := minor % 100

	return strconv.FormatInt(major, 10) + "." + fmt.Sprintf("%02d", cents)
}
