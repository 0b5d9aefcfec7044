package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)

	// EarliestTransactionDate returns nil when the ledger is empty.
	EarliestTransactionDate(ctx context.Context) (*time.Time, error)

	ListCategories(ctx context.Context) ([]*Category, error)
	CreateCategory(ctx context.Context, c *Category) error

	GetBudgetPlan(ctx context.Context, month string) (*BudgetPlan, error)
	PutBudgetPlan(ctx context.Context, plan *BudgetPlan) error
	DeleteBudgetPlan(ctx context.Context, month string) error

	BeginImport(ctx context.Context, minDate, maxDate time.Time) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Transaction, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Amount         int64
	Direction      Direction
	Description    string
	RawDescription string
	Date           time.Time
	CategoryID     *uuid.UUID
	AccountID      *uuid.UUID
}

type ListFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	Direction  *Direction
	Search     string
	Limit      int
	Newest     bool // sort by date descending instead of ascending
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx := &Transaction{
		Amount:         params.Amount,
		Direction:      params.Direction,
		Description:    params.Description,
		RawDescription: params.RawDescription,
		Date:           params.Date,
		CategoryID:     params.CategoryID,
		AccountID:      params.AccountID,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	return s.repo.UpdateTransaction(ctx, tx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

func (s *Service) EarliestDate(ctx context.Context) (*time.Time, error) {
	return s.repo.EarliestTransactionDate(ctx)
}

func (s *Service) Categories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, name, icon string) (*Category, error) {
	c := &Category{Name: name, Icon: icon}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

type ImportResult struct {
	Imported  []*Transaction
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Transaction
}

// ImportBatch inserts a parsed statement batch, flagging rows that look like
// duplicates of already-recorded transactions instead of inserting them.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	type dupKey struct {
		Date           string
		Amount         int64
		Direction      Direction
		RawDescription string
	}

	lookup := make(map[dupKey]*Transaction, len(duplicates))

	for _, d := range duplicates {
		k := dupKey{
			Date:           d.Date.Format(time.DateOnly),
			Amount:         d.Amount,
			Direction:      d.Direction,
			RawDescription: d.RawDescription,
		}
		lookup[k] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		k := dupKey{
			Date:           p.Date.Format(time.DateOnly),
			Amount:         p.Amount,
			Direction:      p.Direction,
			RawDescription: p.RawDescription,
		}

		existing, found := lookup[k]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	txs := paramsToTransactions(newParams)
	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: txs}, nil
}

// CreateBatch inserts the given rows without duplicate checks. Used to
// confirm an import after the caller has reviewed conflicts.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	txs := paramsToTransactions(params)
	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return txs, nil
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}

func paramsToTransactions(params []CreateParams) []*Transaction {
	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = &Transaction{
			Amount:         p.Amount,
			Direction:      p.Direction,
			Description:    p.Description,
			RawDescription: p.RawDescription,
			Date:           p.Date,
			CategoryID:     p.CategoryID,
			AccountID:      p.AccountID,
		}
	}

	return txs
}
