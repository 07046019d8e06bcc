package pgsql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/utils/pagination"
)

func TestTransactionPageQuery_FirstPage(t *testing.T) {
	query, args, err := transactionPageQuery("acc-1", 20, nil)

	require.NoError(t, err)
	assert.NotContains(t, query, "<")
	assert.Contains(t, query, "ORDER BY transaction_date DESC, sequence DESC, transaction_id DESC")
	assert.Contains(t, query, "LIMIT $2")
	assert.Equal(t, []any{"acc-1", 21}, args)
}

func TestTransactionPageQuery_CursorIncludesTransactionID(t *testing.T) {
	// an adjusted pair shares date and sequence; only the id separates them
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	token := pagination.EncodeToken(pagination.Cursor{TransactionDate: date, Sequence: 7, TransactionID: "txn-b"})

	query, args, err := transactionPageQuery("acc-1", 2, &token)

	require.NoError(t, err)
	assert.Contains(t, query, "(transaction_date, sequence, transaction_id) < ($2, $3, $4)")
	assert.Contains(t, query, "ORDER BY transaction_date DESC, sequence DESC, transaction_id DESC")
	assert.Contains(t, query, "LIMIT $5")
	assert.Equal(t, []any{"acc-1", date, int64(7), "txn-b", 3}, args)
}

func TestTransactionPageQuery_InvalidToken(t *testing.T) {
	bad := "not-a-token!"

	_, _, err := transactionPageQuery("acc-1", 20, &bad)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}
