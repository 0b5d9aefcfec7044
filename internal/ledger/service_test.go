package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ashwinvk/spendlens/internal/ledger"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func params(amount int64, day time.Time, raw string) ledger.CreateParams {
	return ledger.CreateParams{
		Amount:         amount,
		Direction:      ledger.DirectionDebit,
		Description:    raw,
		RawDescription: raw,
		Date:           day,
	}
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	repo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
			tx.ID = uuid.New()
			return nil
		})

	tx, err := svc.Create(context.Background(), params(4500, date(2024, time.June, 1), "COFFEE SHOP"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.Equal(t, int64(4500), tx.Amount)
	assert.Equal(t, ledger.DirectionDebit, tx.Direction)
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	id := uuid.New()
	repo.EXPECT().GetTransaction(gomock.Any(), id).Return(nil, ledger.ErrNotFound)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestService_ImportBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	itx := ledger.NewMockImportTx(ctrl)
	svc := ledger.NewService(repo)

	batch := []ledger.CreateParams{
		params(4500, date(2024, time.June, 1), "COFFEE SHOP"),
		params(90000, date(2024, time.June, 3), "RENT TRANSFER"),
	}

	repo.EXPECT().
		BeginImport(gomock.Any(), date(2024, time.June, 1), date(2024, time.June, 3)).
		Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), batch).Return(nil, nil)
	itx.EXPECT().
		CreateTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []*ledger.Transaction) error {
			require.Len(t, txs, 2)
			assert.Equal(t, "COFFEE SHOP", txs[0].RawDescription)
			return nil
		})
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), batch)
	require.NoError(t, err)

	assert.Len(t, result.Imported, 2)
	assert.Empty(t, result.Conflicts)
}

func TestService_ImportBatch_FlagsDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	itx := ledger.NewMockImportTx(ctrl)
	svc := ledger.NewService(repo)

	batch := []ledger.CreateParams{
		params(4500, date(2024, time.June, 1), "COFFEE SHOP"),
		params(90000, date(2024, time.June, 3), "RENT TRANSFER"),
	}

	existing := &ledger.Transaction{
		ID:             uuid.New(),
		Amount:         4500,
		Direction:      ledger.DirectionDebit,
		RawDescription: "COFFEE SHOP",
		Date:           date(2024, time.June, 1),
	}

	repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), batch).Return([]*ledger.Transaction{existing}, nil)
	// Nothing is written while conflicts are unresolved.
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), batch)
	require.NoError(t, err)

	assert.Empty(t, result.Imported)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, existing.ID, result.Conflicts[0].Existing.ID)
	assert.Equal(t, "COFFEE SHOP", result.Conflicts[0].Incoming.RawDescription)

	require.Len(t, result.New, 1)
	assert.Equal(t, "RENT TRANSFER", result.New[0].RawDescription)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	result, err := svc.ImportBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
}

func TestService_CreateBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	itx := ledger.NewMockImportTx(ctrl)
	svc := ledger.NewService(repo)

	batch := []ledger.CreateParams{
		params(4500, date(2024, time.June, 1), "COFFEE SHOP"),
	}

	repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(itx, nil)
	itx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	txs, err := svc.CreateBatch(context.Background(), batch)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestService_CreateCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	repo.EXPECT().
		CreateCategory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *ledger.Category) error {
			c.ID = uuid.New()
			return nil
		})

	c, err := svc.CreateCategory(context.Background(), "Groceries", "cart")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, "Groceries", c.Name)
	assert.Equal(t, "cart", c.Icon)
}
