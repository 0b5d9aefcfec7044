// Package statement parses bank statement CSV exports into ledger rows.
// The column layout is auto-detected against a list of known profiles.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ashwinvk/spendlens/internal/encoding"
	"github.com/ashwinvk/spendlens/internal/ledger"
)

type Importer struct{}

func New() *Importer {
	return &Importer{}
}

func (i *Importer) Parse(r io.Reader) ([]ledger.CreateParams, error) {
	decoded, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1 // banks pad rows inconsistently
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	profile, header, start := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no known statement format matches the header")
	}

	cols := columnIndex(header)

	var params []ledger.CreateParams

	for _, row := range rows[start:] {
		p, ok, err := parseRow(*profile, cols, row)
		if err != nil {
			return nil, err
		}

		if ok {
			params = append(params, p)
		}
	}

	return params, nil
}

// detectProfile scans for a header row matching one of the known profiles.
// Statements often carry preamble rows (account holder, branch) before the
// real header, so every row is a candidate.
func detectProfile(rows [][]string) (*Profile, []string, int) {
	for rowIdx, row := range rows {
		trimmed := make([]string, len(row))
		for i, col := range row {
			trimmed[i] = strings.TrimSpace(col)
		}

		for pIdx := range profiles {
			if matchesProfile(profiles[pIdx], trimmed) {
				return &profiles[pIdx], trimmed, rowIdx + 1
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p Profile, header []string) bool {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}

	for _, required := range p.requiredCols() {
		if !present[required] {
			return false
		}
	}

	return true
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	return cols
}

// parseRow converts one data row. ok is false for rows that are not
// transactions (footers, blank padding) rather than malformed ones.
func parseRow(p Profile, cols map[string]int, row []string) (ledger.CreateParams, bool, error) {
	field := func(name string) string {
		idx, exists := cols[name]
		if !exists || idx >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[idx])
	}

	dateStr := field(p.DateCol)
	if dateStr == "" {
		return ledger.CreateParams{}, false, nil
	}

	date, err := time.Parse(p.DateFormat, dateStr)
	if err != nil {
		// Not a data row; banks append footer lines below the table.
		return ledger.CreateParams{}, false, nil
	}

	desc := field(p.DescCol)

	var amount int64

	var direction ledger.Direction

	switch p.AmountMode {
	case amountSingle:
		raw := field(p.AmountCol)
		if raw == "" {
			return ledger.CreateParams{}, false, nil
		}

		amount, err = parseAmount(raw)
		if err != nil {
			return ledger.CreateParams{}, false, fmt.Errorf("parsing amount %q: %w", raw, err)
		}

		direction = ledger.DirectionDebit
		if amount > 0 {
			direction = ledger.DirectionCredit
		} else {
			amount = -amount
		}
	case amountSplit:
		debitStr := field(p.DebitCol)
		creditStr := field(p.CreditCol)

		switch {
		case debitStr != "" && debitStr != "0.00":
			amount, err = parseAmount(debitStr)
			direction = ledger.DirectionDebit
		case creditStr != "" && creditStr != "0.00":
			amount, err = parseAmount(creditStr)
			direction = ledger.DirectionCredit
		default:
			return ledger.CreateParams{}, false, nil
		}

		if err != nil {
			return ledger.CreateParams{}, false, fmt.Errorf("parsing amount: %w", err)
		}
	}

	if amount == 0 {
		return ledger.CreateParams{}, false, nil
	}

	return ledger.CreateParams{
		Amount:         amount,
		Direction:      direction,
		Description:    desc,
		RawDescription: desc,
		Date:           time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
	}, true, nil
}
