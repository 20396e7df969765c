// Package report renders aggregate category statistics and the
// unresolved-transactions review listing. No classification logic lives
// here.
package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/Sneakypoke/Budget/internal/classify"
	"github.com/Sneakypoke/Budget/internal/model"
)

// CategoryStat aggregates one category's transactions.
type CategoryStat struct {
	Category string
	Count    int
	Total    decimal.Decimal
}

// Statistics groups classified transactions by category, computing count
// and summed amount, sorted by descending count. The sort is stable, so
// categories with equal counts keep first-seen order.
func Statistics(txns []model.Transaction) []CategoryStat {
	index := make(map[string]int)
	var stats []CategoryStat
	for _, t := range txns {
		i, ok := index[t.Category]
		if !ok {
			i = len(stats)
			index[t.Category] = i
			stats = append(stats, CategoryStat{Category: t.Category, Total: decimal.Zero})
		}
		stats[i].Count++
		stats[i].Total = stats[i].Total.Add(t.Amount)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// Unresolved selects transactions whose Category or Payment resolved to
// the Unknown fallback, sorted by date descending, for manual review.
func Unresolved(txns []model.Transaction) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		if t.Category == classify.Unknown || t.Payment == classify.Unknown {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// WriteStatistics renders the category table.
func WriteStatistics(w io.Writer, stats []CategoryStat) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Category\tCount\tTotal Amount")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Category, s.Count, s.Total.StringFixed(2))
	}
	return tw.Flush()
}

// WriteUnresolved renders the review listing.
func WriteUnresolved(w io.Writer, txns []model.Transaction) error {
	if len(txns) == 0 {
		_, err := fmt.Fprintln(w, "No unresolved transactions.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tTransaction Type\tDescription\tAmount")
	for _, t := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.DateString(), t.Type, t.Description, t.Amount.StringFixed(2))
	}
	return tw.Flush()
}
