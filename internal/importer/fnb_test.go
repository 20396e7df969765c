package importer

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFNBParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fnb_statement.csv")
	require.NoError(t, err)

	p := &FNBParser{}
	txns, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Len(t, txns, 3)

	assert.Equal(t, "CHECK CARD PURCHASE WOOLWORTHS SANDTON", txns[0].Description)
	assert.Equal(t, "-350.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "2024/07/02", txns[0].DateString())
}

func TestFNBParser_AccountMetadata(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fnb_statement.csv")
	require.NoError(t, err)

	p := &FNBParser{}
	txns, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)

	// Line 4 field 2 is the number; field 3 is the name with the first
	// two and last one character stripped.
	for _, txn := range txns {
		assert.Equal(t, "62251102478", txn.AccountNumber)
		assert.Equal(t, "Cheque Account", txn.AccountName)
	}
}

func TestFNBParser_FeeDetection(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fnb_statement.csv")
	require.NoError(t, err)

	p := &FNBParser{}
	txns, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)

	assert.Equal(t, FNBGenericType, txns[0].Type)
	assert.Equal(t, FeeType, txns[1].Type)
	assert.Equal(t, "#Monthly Account Fee", txns[1].Description)
	assert.Equal(t, FNBGenericType, txns[2].Type)
}

func TestFNBParser_TooFewLines(t *testing.T) {
	p := &FNBParser{}
	_, err := p.Parse(strings.NewReader("only,one\ntwo,lines\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSource)
}

func TestFNBParser_ShortMetadataRow(t *testing.T) {
	csv := "a\nb\nc\nonlyonefield\nDate,Description,Amount\n2024/07/01,x,-1.00\n"
	p := &FNBParser{}
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSource)
}

func TestFNBParser_AccountNameTooShortToUnwrap(t *testing.T) {
	csv := "a\nb\nc\n4,123,xy\nDate,Description,Amount\n"
	p := &FNBParser{}
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSource)
}

func TestFNBParser_HeaderWhitespaceTrimmed(t *testing.T) {
	csv := "a\nb\nc\n4,123,'(Cheque)\n Date , Description , Amount \n2024/07/01,Coffee,-10.00\n"
	p := &FNBParser{}
	txns, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Coffee", txns[0].Description)
}

func TestFNBParser_UnparseableDateBecomesMarker(t *testing.T) {
	csv := "a\nb\nc\n4,123,'(Cheque)\nDate,Description,Amount\nnotadate,Coffee,-10.00\n"
	p := &FNBParser{}
	txns, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].Date.IsZero())
	assert.Equal(t, "", txns[0].DateString())
}

func TestFNBParser_BadAmount(t *testing.T) {
	csv := "a\nb\nc\n4,123,'(Cheque)\nDate,Description,Amount\n2024/07/01,Coffee,NOTANUMBER\n"
	p := &FNBParser{}
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSource)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestFNBParser_MissingColumn(t *testing.T) {
	csv := "a\nb\nc\n4,123,'(Cheque)\nDate,Narrative,Amount\n2024/07/01,Coffee,-10.00\n"
	p := &FNBParser{}
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSource)
}

func TestFNBParser_Format(t *testing.T) {
	p := &FNBParser{}
	assert.Equal(t, "fnb", p.Format())
}
