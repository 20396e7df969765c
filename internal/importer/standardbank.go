package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Sneakypoke/Budget/internal/model"
)

// StandardBankParser parses Standard Bank history exports: no header row,
// three preamble lines, fixed positional columns, and a trailing summary
// line that is not data and must be discarded.
type StandardBankParser struct{}

const (
	standardBankAccountNumber = "428094465"
	standardBankAccountName   = "Standard Bank"

	// Positional layout: HIST, Date, #, Amount, Transaction Type,
	// Description, Code, 0.
	sbNumFields  = 8
	sbColDate    = 1
	sbColAmount  = 3
	sbColType    = 4
	sbColDesc    = 5
	sbSkipLines  = 3
	sbDateFormat = "20060102"
)

// Format returns the parser name.
func (p *StandardBankParser) Format() string { return "standardbank" }

// Parse reads a Standard Bank CSV and returns canonical transactions.
func (p *StandardBankParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading Standard Bank CSV: %v", ErrMalformedSource, err)
	}

	// Preamble plus at least the trailer line.
	if len(records) < sbSkipLines+1 {
		return nil, fmt.Errorf("%w: expected at least %d lines, got %d",
			ErrMalformedSource, sbSkipLines+1, len(records))
	}

	// Drop the preamble and the trailer.
	data := records[sbSkipLines : len(records)-1]

	var txns []model.Transaction
	for i, rec := range data {
		row := sbSkipLines + 1 + i // 1-based physical line
		if len(rec) < sbNumFields {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d",
				ErrMalformedSource, row, sbNumFields, len(rec))
		}

		date, ok := parseDate(rec[sbColDate], sbDateFormat)
		if !ok {
			return nil, fmt.Errorf("%w: line %d: date %q does not match %s",
				ErrMalformedSource, row, rec[sbColDate], sbDateFormat)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(rec[sbColAmount]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: parsing amount %q: %v",
				ErrMalformedSource, row, rec[sbColAmount], err)
		}

		txns = append(txns, model.Transaction{
			Date:          date,
			Description:   strings.TrimSpace(rec[sbColDesc]),
			Amount:        amount,
			Type:          strings.TrimSpace(rec[sbColType]),
			AccountNumber: standardBankAccountNumber,
			AccountName:   standardBankAccountName,
		})
	}
	return txns, nil
}
