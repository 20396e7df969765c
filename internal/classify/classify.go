// Package classify assigns a spending category (and, for the nested rule
// shape, a payment label) to every merged transaction. Matching is
// case-insensitive substring containment, and the first rule in table
// order always wins.
package classify

import (
	"strings"

	"github.com/Sneakypoke/Budget/internal/model"
	"github.com/Sneakypoke/Budget/internal/rules"
)

// Fallback and short-circuit labels.
const (
	Unknown       = "Unknown"
	Transfer      = "Transfer"
	Uncategorised = "Uncategorised"

	// paymentsBucket is the pseudo-type holding rules for generic
	// purchase transactions.
	paymentsBucket = "Payments"
	eftType        = "EFT"
)

// genericTypes are routed through the Payments bucket instead of their
// own top-level rules.
var genericTypes = []string{"Apple Pay", "POS Purchase", "FNB Generic"}

// Classifier resolves one transaction to a category and payment label.
// Flat-shape classifiers return an empty payment.
type Classifier interface {
	Classify(t model.Transaction) (category, payment string)
	// HasPayment reports whether this classifier produces a payment
	// label, which decides whether sinks carry a Payment column.
	HasPayment() bool
}

// FromTable returns the classifier matching the loaded table's shape.
func FromTable(t *rules.Table) Classifier {
	if t.Flat != nil {
		return &FlatClassifier{table: t.Flat}
	}
	return &NestedClassifier{table: t.Nested}
}

// Apply classifies every transaction, returning a new slice. It is pure:
// writing the classified set to disk is the caller's job.
func Apply(txns []model.Transaction, c Classifier) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		t.Category, t.Payment = c.Classify(t)
		out[i] = t
	}
	return out
}

// NestedClassifier implements the richer Category+Payment matching over
// the nested table shape.
type NestedClassifier struct {
	table *rules.NestedTable
}

// HasPayment reports that nested classification yields payment labels.
func (c *NestedClassifier) HasPayment() bool { return true }

// Classify resolves (Category, Payment), first matching rule wins:
// generic purchase types search the Payments bucket; otherwise the
// transaction's own type key is searched; Transfer short-circuits; EFT
// keeps its historical early exit (see below); anything unmatched falls
// back to (Unknown, Unknown).
func (c *NestedClassifier) Classify(t model.Transaction) (string, string) {
	desc := strings.ToLower(strings.TrimSpace(t.Description))

	if isGenericType(t.Type) {
		if bucket, ok := c.table.Type(paymentsBucket); ok {
			for _, cat := range bucket.Categories {
				for _, label := range cat.Labels {
					if matchAny(desc, label.Matches) {
						return cat.Name, label.Name
					}
				}
			}
		}
		return Unknown, Unknown
	}

	typed, ok := c.table.Type(t.Type)
	if !ok {
		return Unknown, Unknown
	}

	for _, cat := range typed.Categories {
		switch t.Type {
		case Transfer:
			// Transfers resolve unconditionally; the substring lists
			// under the Transfer key are never consulted.
			return Transfer, Transfer
		case eftType:
			// Historical quirk, preserved on purpose: only the first
			// substring reached decides. A match returns the category;
			// a miss returns Uncategorised immediately and the rest of
			// the table is never searched. Do not "fix" this to an
			// exhaustive search without confirming product intent.
			for _, label := range cat.Labels {
				for _, m := range label.Matches {
					if strings.Contains(desc, strings.ToLower(strings.TrimSpace(m))) {
						return cat.Name, t.Description
					}
					return Uncategorised, t.Description
				}
			}
		default:
			for _, label := range cat.Labels {
				if matchAny(desc, label.Matches) {
					return cat.Name, label.Name
				}
			}
		}
	}
	return Unknown, Unknown
}

// FlatClassifier implements the single-Category matching over the flat
// table shape. A rule with an empty type matches any transaction type.
type FlatClassifier struct {
	table *rules.FlatTable
}

// HasPayment reports that flat classification has no payment labels.
func (c *FlatClassifier) HasPayment() bool { return false }

// Classify resolves the category of t; first rule in table order wins.
func (c *FlatClassifier) Classify(t model.Transaction) (string, string) {
	desc := strings.ToLower(t.Description)
	for _, r := range c.table.Rules {
		if r.Type != "" && r.Type != t.Type {
			continue
		}
		if strings.Contains(desc, strings.ToLower(r.Match)) {
			return r.Category, ""
		}
	}
	return Unknown, ""
}

func isGenericType(txnType string) bool {
	for _, g := range genericTypes {
		if txnType == g {
			return true
		}
	}
	return false
}

// matchAny reports whether any substring, trimmed and lower-cased,
// occurs in the already-normalized description.
func matchAny(desc string, matches []string) bool {
	for _, m := range matches {
		if strings.Contains(desc, strings.ToLower(strings.TrimSpace(m))) {
			return true
		}
	}
	return false
}
