package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Sneakypoke/Budget/internal/model"
)

// FNBParser parses FNB cheque-account CSV exports. The first four lines
// are account metadata, not data; line 4 carries the account number and a
// decorated account name, and the column header sits on line 5. Both the
// metadata reader and the tabular reader count from the same offsets, so
// a short file is rejected outright instead of misaligning columns.
type FNBParser struct{}

const (
	// fnbMetadataLines is the number of pre-header rows; the row at
	// index fnbMetadataLines-1 holds account identity, the row at index
	// fnbMetadataLines is the column header.
	fnbMetadataLines = 4

	fnbAccountNumberField = 1
	fnbAccountNameField   = 2

	// FNBGenericType is the synthesized transaction type for FNB rows.
	FNBGenericType = "FNB Generic"

	// FeeType replaces the generic type when the description starts
	// with the bank's fee marker.
	FeeType   = "Fee"
	feeMarker = "#"
)

// Format returns the parser name.
func (p *FNBParser) Format() string { return "fnb" }

// Parse reads an FNB CSV and returns canonical transactions.
func (p *FNBParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading FNB CSV: %v", ErrMalformedSource, err)
	}

	if len(records) <= fnbMetadataLines {
		return nil, fmt.Errorf("%w: expected %d metadata lines and a header, got %d lines",
			ErrMalformedSource, fnbMetadataLines, len(records))
	}

	accNumber, accName, err := fnbAccountInfo(records[fnbMetadataLines-1])
	if err != nil {
		return nil, err
	}

	header := records[fnbMetadataLines]
	cols, err := fnbColumns(header)
	if err != nil {
		return nil, err
	}

	var txns []model.Transaction
	for i, rec := range records[fnbMetadataLines+1:] {
		row := fnbMetadataLines + 2 + i // 1-based physical line
		if len(rec) < len(header) {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d",
				ErrMalformedSource, row, len(header), len(rec))
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(rec[cols.amount]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: parsing amount %q: %v",
				ErrMalformedSource, row, rec[cols.amount], err)
		}

		desc := strings.TrimSpace(rec[cols.desc])
		txnType := FNBGenericType
		if strings.HasPrefix(desc, feeMarker) {
			txnType = FeeType
		}

		txns = append(txns, model.Transaction{
			Date:          coerceDate(rec[cols.date]),
			Description:   desc,
			Amount:        amount,
			Type:          txnType,
			AccountNumber: accNumber,
			AccountName:   accName,
		})
	}
	return txns, nil
}

// fnbAccountInfo extracts the account number and name from the fourth
// metadata row. The name arrives wrapped in decoration characters: the
// first two and the last one are stripped.
func fnbAccountInfo(row []string) (number, name string, err error) {
	if len(row) <= fnbAccountNameField {
		return "", "", fmt.Errorf("%w: account metadata row has %d fields, need %d",
			ErrMalformedSource, len(row), fnbAccountNameField+1)
	}
	number = strings.TrimSpace(row[fnbAccountNumberField])
	raw := row[fnbAccountNameField]
	if len(raw) < 3 {
		return "", "", fmt.Errorf("%w: account name field %q too short to unwrap",
			ErrMalformedSource, raw)
	}
	return number, raw[2 : len(raw)-1], nil
}

type fnbColumnIndex struct {
	date   int
	desc   int
	amount int
}

// fnbColumns locates the needed columns by header name. Header cells are
// whitespace-trimmed before matching.
func fnbColumns(header []string) (fnbColumnIndex, error) {
	idx := fnbColumnIndex{date: -1, desc: -1, amount: -1}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "Date":
			idx.date = i
		case "Description":
			idx.desc = i
		case "Amount":
			idx.amount = i
		}
	}
	if idx.date < 0 || idx.desc < 0 || idx.amount < 0 {
		return idx, fmt.Errorf("%w: header missing Date, Description or Amount column", ErrMalformedSource)
	}
	return idx, nil
}
