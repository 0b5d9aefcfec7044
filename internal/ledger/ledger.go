package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Direction distinguishes money leaving an account from money entering it.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

var ErrNotFound = errors.New("not found")

// Transaction is a single recorded ledger entry. Amounts are positive
// minor currency units; Direction carries the sign.
type Transaction struct {
	ID             uuid.UUID
	Amount         int64
	Direction      Direction
	Description    string
	RawDescription string
	Date           time.Time // calendar day, UTC midnight
	CategoryID     *uuid.UUID
	AccountID      *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
}

// Category is static reference data; a nil CategoryID on a transaction
// means "uncategorized".
type Category struct {
	ID        uuid.UUID
	Name      string
	Icon      string
	CreatedAt time.Time
}

// Account groups transactions by their source account.
type Account struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// BudgetEntry is a per-category spending limit within a monthly plan.
type BudgetEntry struct {
	CategoryID uuid.UUID
	Limit      int64
}

// BudgetPlan holds at most one set of category limits per calendar month.
// Month is formatted "YYYY-MM".
type BudgetPlan struct {
	Month   string
	Entries []BudgetEntry
}

// TotalBudget is the sum of all category limits in the plan.
func (p *BudgetPlan) TotalBudget() int64 {
	var total int64
	for _, e := range p.Entries {
		total += e.Limit
	}

	return total
}
