package statement_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinvk/spendlens/internal/importer/statement"
	"github.com/ashwinvk/spendlens/internal/ledger"
)

func TestParse_GenericSignedAmounts(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Amount",
		"2024-06-01,Swiggy Order,-450.00",
		"2024-06-02,Salary,85000.00",
		"2024-06-03,Metro Recharge,-200.00",
	}, "\n")

	params, err := statement.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.Equal(t, int64(45000), params[0].Amount)
	assert.Equal(t, ledger.DirectionDebit, params[0].Direction)
	assert.Equal(t, "Swiggy Order", params[0].Description)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), params[0].Date)

	assert.Equal(t, int64(8500000), params[1].Amount)
	assert.Equal(t, ledger.DirectionCredit, params[1].Direction)

	assert.Equal(t, ledger.DirectionDebit, params[2].Direction)
}

func TestParse_SplitColumns(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Debit,Credit",
		"01/06/2024,Grocery Store,1250.50,",
		"02/06/2024,Refund,,99.00",
	}, "\n")

	params, err := statement.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, int64(125050), params[0].Amount)
	assert.Equal(t, ledger.DirectionDebit, params[0].Direction)

	assert.Equal(t, int64(9900), params[1].Amount)
	assert.Equal(t, ledger.DirectionCredit, params[1].Direction)
}

func TestParse_SkipsPreambleAndFooter(t *testing.T) {
	input := strings.Join([]string{
		"Account Statement",
		"Name:,A Kumar",
		"",
		"Date,Description,Amount",
		"2024-06-01,Chai Point,-30.00",
		"",
		"Closing Balance,,12345.00",
	}, "\n")

	params, err := statement.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "Chai Point", params[0].Description)
}

func TestParse_IndianGrouping(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Amount",
		`2024-06-01,Rent,"-1,23,456.00"`,
	}, "\n")

	params, err := statement.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, int64(12345600), params[0].Amount)
	assert.Equal(t, ledger.DirectionDebit, params[0].Direction)
}

func TestParse_UnknownHeader(t *testing.T) {
	input := "Foo,Bar\n1,2\n"

	_, err := statement.New().Parse(strings.NewReader(input))
	assert.Error(t, err)
}
