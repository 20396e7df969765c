// Package export writes the classified transaction set to its flat CSV
// sinks and reads the main sink back for standalone reporting.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sneakypoke/Budget/internal/model"
)

// Header is the CSV header of the classified-transactions sink. The
// Payment column is appended only for the nested rule shape.
const Header = "Date,Account Name,Account Number,Transaction Type,Description,Amount,Category"

// BudgetHeader is the narrower budget-summary projection.
const BudgetHeader = "Date,Description,Amount,Category,Account Name"

// paymentColumn is the optional trailing column name.
const paymentColumn = "Payment"

const (
	numFields  = 7 // without Payment
	colDate    = 0
	colAcctNam = 1
	colAcctNum = 2
	colType    = 3
	colDesc    = 4
	colAmount  = 5
	colCat     = 6
	colPayment = 7
)

// MarshalTransaction converts a transaction to a sink row.
func MarshalTransaction(t model.Transaction, withPayment bool) []string {
	n := numFields
	if withPayment {
		n++
	}
	row := make([]string, n)
	row[colDate] = t.DateString()
	row[colAcctNam] = t.AccountName
	row[colAcctNum] = t.AccountNumber
	row[colType] = t.Type
	row[colDesc] = t.Description
	row[colAmount] = t.Amount.StringFixed(2)
	row[colCat] = t.Category
	if withPayment {
		row[colPayment] = t.Payment
	}
	return row
}

// UnmarshalTransaction converts a sink row back to a transaction.
func UnmarshalTransaction(record []string, withPayment bool) (model.Transaction, error) {
	want := numFields
	if withPayment {
		want++
	}
	if len(record) != want {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", want, len(record))
	}

	var date time.Time
	if record[colDate] != "" {
		var err error
		date, err = time.Parse(model.DateFormat, record[colDate])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
		}
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	t := model.Transaction{
		Date:          date,
		Description:   record[colDesc],
		Amount:        amount,
		Type:          record[colType],
		AccountNumber: record[colAcctNum],
		AccountName:   record[colAcctNam],
		Category:      record[colCat],
	}
	if withPayment {
		t.Payment = record[colPayment]
	}
	return t, nil
}

// WriteTransactions writes the classified sink (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction, withPayment bool) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := strings.Split(Header, ",")
	if withPayment {
		header = append(header, paymentColumn)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t, withPayment)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadTransactions reads a previously written classified sink. Whether
// the Payment column is present is detected from the header row.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	withPayment := len(header) > numFields && header[numFields] == paymentColumn
	if len(header) != numFields && !withPayment {
		return nil, fmt.Errorf("unrecognized header %v", header)
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		t, err := UnmarshalTransaction(rec, withPayment)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// WriteBudget writes the budget-summary projection (including header).
func WriteBudget(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(BudgetHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range txns {
		row := []string{t.DateString(), t.Description, t.Amount.StringFixed(2), t.Category, t.AccountName}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
