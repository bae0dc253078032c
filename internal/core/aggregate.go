package core

// CategoryTotals holds the per-category saving and expense sums used by
// the grouped-bar chart. A category with no transactions of one kind
// reports zero for that side.
type CategoryTotals struct {
	Category     string
	TotalSaving  Money
	TotalExpense Money
}

// AggregateByCategory groups transactions by exact category name
// (case-sensitive, no trimming) and sums amounts separately per kind.
// Output order is first-seen input order, so repeated calls on the same
// input are stable.
func AggregateByCategory(txs []Transaction) []CategoryTotals {
	if len(txs) == 0 {
		return nil
	}

	index := make(map[string]int, len(txs))
	totals := make([]CategoryTotals, 0, len(txs))

	for _, t := range txs {
		i, ok := index[t.Category]
		if !ok {
			i = len(totals)
			index[t.Category] = i
			totals = append(totals, CategoryTotals{Category: t.Category})
		}
		switch t.Kind {
		case KindSaving:
			totals[i].TotalSaving.Cents += t.Amount.Cents
		case KindExpense:
			totals[i].TotalExpense.Cents += t.Amount.Cents
		}
	}

	return totals
}
