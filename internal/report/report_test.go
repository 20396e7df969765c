package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sneakypoke/Budget/internal/model"
)

func classifiedTxn(category, payment string, amount float64, day int) model.Transaction {
	return model.Transaction{
		Date:        time.Date(2024, 7, day, 0, 0, 0, 0, time.UTC),
		Description: "desc",
		Amount:      decimal.NewFromFloat(amount),
		Type:        "EFT",
		Category:    category,
		Payment:     payment,
	}
}

func TestStatistics_CountsAndSums(t *testing.T) {
	txns := []model.Transaction{
		classifiedTxn("Groceries", "x", -100, 1),
		classifiedTxn("Groceries", "x", -50, 2),
		classifiedTxn("Housing", "x", -9500, 3),
	}

	stats := Statistics(txns)
	require.Len(t, stats, 2)
	assert.Equal(t, "Groceries", stats[0].Category)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, "-150.00", stats[0].Total.StringFixed(2))
	assert.Equal(t, "Housing", stats[1].Category)
}

func TestStatistics_SortedByDescendingCount(t *testing.T) {
	txns := []model.Transaction{
		classifiedTxn("A", "x", -1, 1),
		classifiedTxn("B", "x", -1, 1),
		classifiedTxn("B", "x", -1, 2),
		classifiedTxn("B", "x", -1, 3),
		classifiedTxn("C", "x", -1, 1),
		classifiedTxn("C", "x", -1, 2),
	}

	stats := Statistics(txns)
	require.Len(t, stats, 3)
	assert.Equal(t, "B", stats[0].Category)
	assert.Equal(t, "C", stats[1].Category)
	assert.Equal(t, "A", stats[2].Category)
}

func TestStatistics_Empty(t *testing.T) {
	assert.Empty(t, Statistics(nil))
}

func TestUnresolved_SelectsUnknownCategoryOrPayment(t *testing.T) {
	txns := []model.Transaction{
		classifiedTxn("Groceries", "Woolworths", -1, 1),
		classifiedTxn("Unknown", "Unknown", -2, 2),
		classifiedTxn("Groceries", "Unknown", -3, 3),
	}

	out := Unresolved(txns)
	require.Len(t, out, 2)
}

func TestUnresolved_SortedByDateDescending(t *testing.T) {
	txns := []model.Transaction{
		classifiedTxn("Unknown", "Unknown", -1, 1),
		classifiedTxn("Unknown", "Unknown", -2, 15),
		classifiedTxn("Unknown", "Unknown", -3, 7),
	}

	out := Unresolved(txns)
	require.Len(t, out, 3)
	assert.Equal(t, 15, out[0].Date.Day())
	assert.Equal(t, 7, out[1].Date.Day())
	assert.Equal(t, 1, out[2].Date.Day())
}

func TestWriteStatistics(t *testing.T) {
	var buf bytes.Buffer
	err := WriteStatistics(&buf, Statistics([]model.Transaction{
		classifiedTxn("Groceries", "x", -150, 1),
	}))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Groceries")
	assert.Contains(t, buf.String(), "-150.00")
}

func TestWriteUnresolved_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUnresolved(&buf, nil))
	assert.Contains(t, buf.String(), "No unresolved transactions")
}

func TestWriteUnresolved_ListsTypeAndDescription(t *testing.T) {
	var buf bytes.Buffer
	txn := classifiedTxn("Unknown", "Unknown", -42, 9)
	require.NoError(t, WriteUnresolved(&buf, []model.Transaction{txn}))
	assert.Contains(t, buf.String(), "EFT")
	assert.Contains(t, buf.String(), "desc")
	assert.Contains(t, buf.String(), "2024/07/09")
}
