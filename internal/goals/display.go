package goals

import "budgetbuddy/internal/core"

// DisplayProgress computes an in-memory completion percentage (0-100)
// from a locally cached transaction list, for instant UI feedback before
// the asynchronous reconciliation lands. Unlike the persisted metric, it
// matches transactions by exact category and case-insensitive kind, so
// the two values can legitimately differ; the persisted progress field
// remains the canonical one.
func DisplayProgress(g core.Goal, txs []core.Transaction) float64 {
	if g.Target.Cents <= 0 {
		return 0
	}
	var total int64
	for _, t := range txs {
		if t.UserID != g.UserID {
			continue
		}
		if t.Category != g.Category {
			continue
		}
		if !t.Kind.Matches(g.Kind) {
			continue
		}
		total += t.Amount.Cents
	}
	pct := float64(total) / float64(g.Target.Cents) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
