// Package merge unions transaction collections and collapses exact
// duplicates, keeping first-seen order so downstream diffs stay stable.
package merge

import "github.com/Sneakypoke/Budget/internal/model"

// Dedup collapses exact duplicate transactions to one, preserving the
// order of first appearance. Two records are duplicates only when every
// field matches (model.Transaction.Key).
func Dedup(txns []model.Transaction) []model.Transaction {
	if len(txns) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(txns))
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		k := t.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Merge unions the given collections in argument order and deduplicates.
// Callers pass the per-source sets in canonical source order so the
// merged order is deterministic.
func Merge(sets ...[]model.Transaction) []model.Transaction {
	var all []model.Transaction
	for _, s := range sets {
		all = append(all, s...)
	}
	return Dedup(all)
}
