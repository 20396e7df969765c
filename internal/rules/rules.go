// Package rules loads and validates the classification rule table. The
// table drives "first match in table order wins" semantics, so every
// level is kept as an ordered slice rather than a Go map.
package rules

import "errors"

// ErrInvalidTable marks a rule table that is absent, unparsable, or
// structurally wrong. It is fatal to a run: no meaningful classification
// can happen without rules.
var ErrInvalidTable = errors.New("invalid rule table")

// Table is the loaded rule table in one of the two supported shapes.
// Exactly one of Nested or Flat is set.
type Table struct {
	Nested *NestedTable
	Flat   *FlatTable
}

// NestedTable is the richer shape:
// TransactionType -> Category -> PaymentLabel -> [match substrings].
type NestedTable struct {
	Types []TypeRules
}

// Type returns the rules for a transaction type by exact name.
func (t *NestedTable) Type(name string) (*TypeRules, bool) {
	for i := range t.Types {
		if t.Types[i].Name == name {
			return &t.Types[i], true
		}
	}
	return nil, false
}

// TypeRules holds the ordered categories for one transaction type.
type TypeRules struct {
	Name       string
	Categories []CategoryRules
}

// CategoryRules holds the ordered payment labels for one category.
type CategoryRules struct {
	Name   string
	Labels []LabelRules
}

// LabelRules binds a payment label to its bank-description substrings.
type LabelRules struct {
	Name    string
	Matches []string
}

// FlatTable is the simpler shape, flattened to an ordered rule list:
// (TransactionType, substring) -> Category. An empty Type matches any
// transaction type.
type FlatTable struct {
	Rules []FlatRule
}

// FlatRule is one entry of the flat shape.
type FlatRule struct {
	Type     string
	Match    string
	Category string
}
