package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/ashwinvk/spendlens/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, amount, direction, description, raw_description,
// date, category_id, account_id, created_at, updated_at, deleted_at
func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var direction string

	var rawDesc sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.Amount, &direction, &tx.Description, &rawDesc, &tx.Date,
		&tx.CategoryID, &tx.AccountID,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.DeletedAt,
	); err != nil {
		return nil, err
	}

	tx.Direction = ledger.Direction(direction)
	tx.RawDescription = rawDesc.String

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.amount, t.direction, t.description, t.raw_description, t.date,
	t.category_id, t.account_id, t.created_at, t.updated_at, t.deleted_at
`

func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (amount, direction, description, raw_description, date, category_id, account_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.Amount,
		tx.Direction,
		tx.Description,
		tx.RawDescription,
		tx.Date,
		tx.CategoryID,
		tx.AccountID,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1 AND t.deleted_at IS NULL`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND t.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.Direction != nil {
		query += fmt.Sprintf(" AND t.direction = $%d", argIdx)

		args = append(args, *filter.Direction)
		argIdx++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (t.description ILIKE $%d OR t.raw_description ILIKE $%d)", argIdx, argIdx)

		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	if filter.Newest {
		query += " ORDER BY t.date DESC, t.created_at DESC"
	} else {
		query += " ORDER BY t.date ASC, t.created_at ASC"
	}

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $1, direction = $2, description = $3, date = $4, category_id = $5, updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.Amount,
		tx.Direction,
		tx.Description,
		tx.Date,
		tx.CategoryID,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE transactions
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}

func (s *Store) EarliestTransactionDate(ctx context.Context) (*time.Time, error) {
	query := `SELECT MIN(date) FROM transactions WHERE deleted_at IS NULL`

	var earliest sql.NullTime
	if err := s.db.QueryRowContext(ctx, query).Scan(&earliest); err != nil {
		return nil, fmt.Errorf("finding earliest transaction: %w", err)
	}

	if !earliest.Valid {
		return nil, nil
	}

	return &earliest.Time, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*ledger.Category, error) {
	query := `SELECT id, name, icon, created_at FROM categories ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []*ledger.Category

	for rows.Next() {
		var c ledger.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		cats = append(cats, &c)
	}

	return cats, rows.Err()
}

func (s *Store) CreateCategory(ctx context.Context, c *ledger.Category) error {
	query := `
		INSERT INTO categories (name, icon, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.Icon).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) GetBudgetPlan(ctx context.Context, month string) (*ledger.BudgetPlan, error) {
	query := `
		SELECT category_id, limit_amount
		FROM budget_goals
		WHERE month = $1
		ORDER BY limit_amount DESC
	`

	rows, err := s.db.QueryContext(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("getting budget plan: %w", err)
	}
	defer rows.Close()

	plan := &ledger.BudgetPlan{Month: month}

	for rows.Next() {
		var e ledger.BudgetEntry
		if err := rows.Scan(&e.CategoryID, &e.Limit); err != nil {
			return nil, fmt.Errorf("scanning budget entry: %w", err)
		}

		plan.Entries = append(plan.Entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(plan.Entries) == 0 {
		return nil, nil
	}

	return plan, nil
}

// PutBudgetPlan replaces the month's plan atomically: one plan at most per month.
func (s *Store) PutBudgetPlan(ctx context.Context, plan *ledger.BudgetPlan) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM budget_goals WHERE month = $1`, plan.Month); err != nil {
		return fmt.Errorf("clearing budget plan: %w", err)
	}

	query := `
		INSERT INTO budget_goals (month, category_id, limit_amount, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	for _, e := range plan.Entries {
		if _, err := dbTx.ExecContext(ctx, query, plan.Month, e.CategoryID, e.Limit); err != nil {
			return fmt.Errorf("inserting budget entry: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing budget plan: %w", err)
	}

	return nil
}

func (s *Store) DeleteBudgetPlan(ctx context.Context, month string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM budget_goals WHERE month = $1`, month); err != nil {
		return fmt.Errorf("deleting budget plan: %w", err)
	}

	return nil
}

func importLockKey(minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(minDate.Format("2006-01-02")))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format("2006-01-02")))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context, minDate, maxDate time.Time) (ledger.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(minDate, maxDate)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, params []ledger.CreateParams) ([]*ledger.Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date           string
		Amount         int64
		Direction      ledger.Direction
		RawDescription string
	}

	minDate := params[0].Date
	maxDate := params[0].Date
	keySet := make(map[lookupKey]struct{}, len(params))

	for _, p := range params {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}

		keySet[lookupKey{
			Date:           p.Date.Format(time.DateOnly),
			Amount:         p.Amount,
			Direction:      p.Direction,
			RawDescription: p.RawDescription,
		}] = struct{}{}
	}

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.deleted_at IS NULL AND t.date >= $1 AND t.date <= $2`

	rows, err := itx.tx.QueryContext(ctx, query, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("querying duplicate candidates: %w", err)
	}
	defer rows.Close()

	var duplicates []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning duplicate candidate: %w", err)
		}

		k := lookupKey{
			Date:           tx.Date.Format(time.DateOnly),
			Amount:         tx.Amount,
			Direction:      tx.Direction,
			RawDescription: tx.RawDescription,
		}

		if _, found := keySet[k]; found {
			duplicates = append(duplicates, tx)
		}
	}

	return duplicates, rows.Err()
}

func (itx *importTx) CreateTransactions(ctx context.Context, txs []*ledger.Transaction) error {
	query := `
		INSERT INTO transactions (amount, direction, description, raw_description, date, category_id, account_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	for _, tx := range txs {
		err := itx.tx.QueryRowContext(ctx, query,
			tx.Amount,
			tx.Direction,
			tx.Description,
			tx.RawDescription,
			tx.Date,
			tx.CategoryID,
			tx.AccountID,
		).Scan(&tx.ID, &tx.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting transaction: %w", err)
		}
	}

	return nil
}
