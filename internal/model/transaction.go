package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the canonical date rendering used in every sink.
const DateFormat = "2006/01/02"

// Transaction is the canonical record every source dialect normalizes into.
type Transaction struct {
	Date          time.Time // zero value marks an unparseable source date
	Description   string
	Amount        decimal.Decimal // sign convention follows the source file
	Type          string          // bank transaction type (EFT, POS Purchase, etc.)
	AccountNumber string
	AccountName   string
	Category      string // empty until classified
	Payment       string // empty until classified; nested rule shape only
}

// DateString renders the date as YYYY/MM/DD, or "" for the
// unparseable-date marker.
func (t Transaction) DateString() string {
	if t.Date.IsZero() {
		return ""
	}
	return t.Date.Format(DateFormat)
}

// Key returns the exact-duplicate identity of a transaction. Two records
// are duplicates only when every field, including Category and Payment
// when present, matches exactly.
func (t Transaction) Key() string {
	return strings.Join([]string{
		t.DateString(),
		t.Description,
		t.Amount.String(),
		t.Type,
		t.AccountNumber,
		t.AccountName,
		t.Category,
		t.Payment,
	}, "\x1f")
}
