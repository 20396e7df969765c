package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDateString(t *testing.T) {
	txn := Transaction{Date: time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2024/07/02", txn.DateString())
}

func TestDateString_UnparseableMarker(t *testing.T) {
	txn := Transaction{}
	assert.Equal(t, "", txn.DateString())
}

func TestKey_IdenticalRecordsMatch(t *testing.T) {
	a := Transaction{
		Date:        time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
		Description: "WOOLWORTHS",
		Amount:      decimal.NewFromFloat(-350),
		Type:        "POS Purchase",
	}
	b := a
	assert.Equal(t, a.Key(), b.Key())
}

func TestKey_AnyFieldDifferenceDistinguishes(t *testing.T) {
	base := Transaction{
		Date:          time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
		Description:   "WOOLWORTHS",
		Amount:        decimal.NewFromFloat(-350),
		Type:          "POS Purchase",
		AccountNumber: "123",
		AccountName:   "Cheque",
		Category:      "Groceries",
		Payment:       "Woolworths",
	}

	variants := []Transaction{base, base, base, base, base, base, base, base}
	variants[0].Date = time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC)
	variants[1].Description = "woolworths"
	variants[2].Amount = decimal.NewFromFloat(-350.01)
	variants[3].Type = "Apple Pay"
	variants[4].AccountNumber = "124"
	variants[5].AccountName = "Savings"
	variants[6].Category = "Eating Out"
	variants[7].Payment = "Other"

	for i, v := range variants {
		assert.NotEqual(t, base.Key(), v.Key(), "variant %d", i)
	}
}
