package export

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ashwinvk/spendlens/internal/ledger"
)

// Mock Repository
type mockRepo struct {
	listTransactionsFunc func(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error)
	listCategoriesFunc   func(ctx context.Context) ([]*ledger.Category, error)
}

func (m *mockRepo) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error { return nil }

func (m *mockRepo) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	return nil, nil
}

func (m *mockRepo) UpdateTransaction(ctx context.Context, tx *ledger.Transaction) error { return nil }
func (m *mockRepo) DeleteTransaction(ctx context.Context, id uuid.UUID) error           { return nil }

func (m *mockRepo) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	if m.listTransactionsFunc != nil {
		return m.listTransactionsFunc(ctx, filter)
	}

	return nil, nil
}

func (m *mockRepo) EarliestTransactionDate(ctx context.Context) (*time.Time, error) {
	return nil, nil
}

func (m *mockRepo) ListCategories(ctx context.Context) ([]*ledger.Category, error) {
	if m.listCategoriesFunc != nil {
		return m.listCategoriesFunc(ctx)
	}

	return nil, nil
}

func (m *mockRepo) CreateCategory(ctx context.Context, c *ledger.Category) error { return nil }

func (m *mockRepo) GetBudgetPlan(ctx context.Context, month string) (*ledger.BudgetPlan, error) {
	return nil, nil
}

func (m *mockRepo) PutBudgetPlan(ctx context.Context, plan *ledger.BudgetPlan) error { return nil }
func (m *mockRepo) DeleteBudgetPlan(ctx context.Context, month string) error         { return nil }

func (m *mockRepo) BeginImport(ctx context.Context, minDate, maxDate time.Time) (ledger.ImportTx, error) {
	return nil, nil
}

func TestExportService_Export(t *testing.T) {
	catID := uuid.New()

	repo := &mockRepo{
		listTransactionsFunc: func(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
			return []*ledger.Transaction{
				{
					ID:          uuid.New(),
					Amount:      45000,
					Direction:   ledger.DirectionDebit,
					Description: "Swiggy Order",
					Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
					CategoryID:  &catID,
				},
				{
					ID:          uuid.New(),
					Amount:      8500000,
					Direction:   ledger.DirectionCredit,
					Description: "Salary",
					Date:        time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
				},
			}, nil
		},
		listCategoriesFunc: func(ctx context.Context) ([]*ledger.Category, error) {
			return []*ledger.Category{{ID: catID, Name: "Food"}}, nil
		},
	}

	svc := NewService(ledger.NewService(repo))

	var buf bytes.Buffer

	count, err := svc.Export(context.Background(), ledger.ListFilter{}, &buf)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if count != 2 {
		t.Errorf("expected 2 exported transactions, got %d", count)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}

	if lines[0] != "date,description,direction,amount,category" {
		t.Errorf("unexpected header: %s", lines[0])
	}

	if lines[1] != "2024-06-01,Swiggy Order,debit,450.00,Food" {
		t.Errorf("unexpected row: %s", lines[1])
	}

	if lines[2] != "2024-06-02,Salary,credit,85000.00," {
		t.Errorf("unexpected row: %s", lines[2])
	}
}
