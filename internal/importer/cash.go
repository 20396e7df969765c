package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Sneakypoke/Budget/internal/model"
)

// CashParser parses the hand-kept cash ledger: a plain CSV with a header
// row and no bank metadata. Every row gets the constant Cash type.
type CashParser struct{}

const (
	cashAccountNumber = "Cash Account"
	cashAccountName   = "Cash Transactions"

	// CashType is the constant transaction type for ledger rows.
	CashType = "Cash"

	cashColDate   = "Date"
	cashColDesc   = "Description"
	cashColAmount = "Amount"
)

// Format returns the parser name.
func (p *CashParser) Format() string { return "cash" }

// Parse reads a cash ledger CSV and returns canonical transactions.
func (p *CashParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading cash CSV: %v", ErrMalformedSource, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformedSource)
	}

	cols := map[string]int{}
	for i, h := range records[0] {
		cols[strings.TrimSpace(h)] = i
	}
	for _, name := range []string{cashColDate, cashColDesc, cashColAmount} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: header missing %q column", ErrMalformedSource, name)
		}
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		row := i + 2
		if len(rec) < len(records[0]) {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d",
				ErrMalformedSource, row, len(records[0]), len(rec))
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(rec[cols[cashColAmount]]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: parsing amount %q: %v",
				ErrMalformedSource, row, rec[cols[cashColAmount]], err)
		}

		txns = append(txns, model.Transaction{
			Date:          coerceDate(rec[cols[cashColDate]]),
			Description:   strings.TrimSpace(rec[cols[cashColDesc]]),
			Amount:        amount,
			Type:          CashType,
			AccountNumber: cashAccountNumber,
			AccountName:   cashAccountName,
		})
	}
	return txns, nil
}
