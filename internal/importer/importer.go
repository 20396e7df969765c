// Package importer parses the four supported bank export dialects into
// canonical transactions and aggregates whole folders of them.
package importer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Sneakypoke/Budget/internal/merge"
	"github.com/Sneakypoke/Budget/internal/model"
)

// ErrMalformedSource marks a file that violates its dialect's structural
// assumptions (too few lines, wrong date format, broken metadata row).
var ErrMalformedSource = errors.New("malformed source file")

// Parser converts one bank export file of a known dialect into canonical
// transactions.
type Parser interface {
	Parse(r io.Reader) ([]model.Transaction, error)
	Format() string
}

// Registry holds named parsers. Parsers are selected by configured source
// format, never by sniffing file contents.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&FNBParser{})
	r.Register(&DiscoveryParser{})
	r.Register(&StandardBankParser{})
	r.Register(&CashParser{})
	return r
}

// FileResult records the outcome of parsing one file. Records counts the
// rows parsed from that file before cross-file deduplication.
type FileResult struct {
	Path    string
	Records int
	Err     error
}

// ImportFolder parses every .csv file in dir with p and returns the union
// with exact duplicates collapsed first-seen, plus a per-file result for
// auditing. A missing or empty folder yields nothing. A file that fails
// to parse is skipped; its siblings are still processed.
func ImportFolder(p Parser, dir string) ([]model.Transaction, []FileResult) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, []FileResult{{Path: dir, Err: err}}
	}

	var txns []model.Transaction
	var results []FileResult
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		parsed, err := parseFile(p, path)
		if err != nil {
			results = append(results, FileResult{Path: path, Err: err})
			continue
		}
		results = append(results, FileResult{Path: path, Records: len(parsed)})
		txns = append(txns, parsed...)
	}
	return merge.Dedup(txns), results
}

func parseFile(p Parser, path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}

// parseDate tries each layout in order and reports whether any matched.
func parseDate(value string, layouts ...string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range layouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// coercedLayouts covers the date renderings seen in exports whose dates
// are normalized leniently (FNB, Cash). A value matching none of them
// becomes the unparseable-date marker rather than an error.
var coercedLayouts = []string{
	"2006/01/02",
	"2006-01-02",
	"02 Jan 2006",
	"2 Jan 2006",
	"2006-01-02 15:04:05",
	"20060102",
}

// coerceDate parses leniently; failure yields the zero-time marker.
func coerceDate(value string) time.Time {
	d, _ := parseDate(value, coercedLayouts...)
	return d
}
