package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cashCSV = "Date,Description,Amount\n2024-07-04,Parking,-20.00\n2024-07-10,Tip,-30.00\n"

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&CashParser{})
	p := r.Get("cash")
	require.NotNil(t, p)
	assert.Equal(t, "cash", p.Format())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&FNBParser{})
	assert.NotNil(t, r.Get("FNB"))
	assert.NotNil(t, r.Get("Fnb"))
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, format := range []string{"fnb", "discovery", "standardbank", "cash"} {
		assert.NotNil(t, r.Get(format), format)
	}
}

func TestImportFolder_UnionsFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "july.csv"), []byte(cashCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "august.csv"),
		[]byte("Date,Description,Amount\n2024-08-01,Market,-50.00\n"), 0o644))

	txns, results := ImportFolder(&CashParser{}, dir)
	assert.Len(t, txns, 3)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.NoError(t, res.Err)
	}
}

func TestImportFolder_DeduplicatesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte(cashCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte(cashCSV), 0o644))

	txns, results := ImportFolder(&CashParser{}, dir)
	assert.Len(t, txns, 2)

	// Per-file counts are pre-dedup.
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].Records)
	assert.Equal(t, 2, results[1].Records)
}

func TestImportFolder_BadFileSkippedSiblingsKept(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"),
		[]byte("Date,Description,Amount\n2024-07-04,Parking,NOTANUMBER\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.csv"), []byte(cashCSV), 0o644))

	txns, results := ImportFolder(&CashParser{}, dir)
	assert.Len(t, txns, 2)

	require.Len(t, results, 2)
	assert.ErrorIs(t, results[0].Err, ErrMalformedSource)
	assert.NoError(t, results[1].Err)
}

func TestImportFolder_IgnoresNonCSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cash.csv"), []byte(cashCSV), 0o644))

	txns, results := ImportFolder(&CashParser{}, dir)
	assert.Len(t, txns, 2)
	assert.Len(t, results, 1)
}

func TestImportFolder_ExtensionCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CASH.CSV"), []byte(cashCSV), 0o644))

	txns, _ := ImportFolder(&CashParser{}, dir)
	assert.Len(t, txns, 2)
}

func TestImportFolder_EmptyFolder(t *testing.T) {
	txns, results := ImportFolder(&CashParser{}, t.TempDir())
	assert.Nil(t, txns)
	assert.Nil(t, results)
}

func TestImportFolder_MissingFolder(t *testing.T) {
	txns, results := ImportFolder(&CashParser{}, filepath.Join(t.TempDir(), "nope"))
	assert.Nil(t, txns)
	assert.Nil(t, results)
}
