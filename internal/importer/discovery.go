package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Sneakypoke/Budget/internal/model"
)

// DiscoveryParser parses Discovery Bank credit-card CSV exports: a
// standard header row whose source column names are mapped onto the
// canonical schema (Value Date -> Date, Type -> Transaction Type).
type DiscoveryParser struct{}

const (
	discoveryAccountNumber = "17275813806"
	discoveryAccountName   = "Discovery Credit Card"

	discoveryColDate   = "Value Date"
	discoveryColType   = "Type"
	discoveryColDesc   = "Description"
	discoveryColAmount = "Amount"
)

// discoveryDateLayouts covers the date-time renderings Discovery uses for
// Value Date. Unlike the lenient sources, a value matching none of these
// is a malformed row.
var discoveryDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// Format returns the parser name.
func (p *DiscoveryParser) Format() string { return "discovery" }

// Parse reads a Discovery CSV and returns canonical transactions.
func (p *DiscoveryParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading Discovery CSV: %v", ErrMalformedSource, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformedSource)
	}

	header := records[0]
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, name := range []string{discoveryColDate, discoveryColType, discoveryColDesc, discoveryColAmount} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: header missing %q column", ErrMalformedSource, name)
		}
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		row := i + 2
		if len(rec) < len(header) {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d",
				ErrMalformedSource, row, len(header), len(rec))
		}

		date, ok := parseDate(rec[cols[discoveryColDate]], discoveryDateLayouts...)
		if !ok {
			return nil, fmt.Errorf("%w: line %d: unparseable value date %q",
				ErrMalformedSource, row, rec[cols[discoveryColDate]])
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(rec[cols[discoveryColAmount]]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: parsing amount %q: %v",
				ErrMalformedSource, row, rec[cols[discoveryColAmount]], err)
		}

		txns = append(txns, model.Transaction{
			Date:          date,
			Description:   strings.TrimSpace(rec[cols[discoveryColDesc]]),
			Amount:        amount,
			Type:          strings.TrimSpace(rec[cols[discoveryColType]]),
			AccountNumber: discoveryAccountNumber,
			AccountName:   discoveryAccountName,
		})
	}
	return txns, nil
}
