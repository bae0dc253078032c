package core

import (
	"testing"
	"time"
)

func tx(category string, kind Kind, cents int64) Transaction {
	return Transaction{
		UserID:     "u1",
		Kind:       kind,
		OccurredAt: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Title:      "t",
		Amount:     Money{Cents: cents},
		Category:   category,
	}
}

func TestAggregateByCategoryEmpty(t *testing.T) {
	if got := AggregateByCategory(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestAggregateByCategoryBothKinds(t *testing.T) {
	got := AggregateByCategory([]Transaction{
		tx("Ocio", KindExpense, 2000),
		tx("Ocio", KindSaving, 500),
	})
	if len(got) != 1 {
		t.Fatalf("expected one group, got %d", len(got))
	}
	g := got[0]
	if g.Category != "Ocio" || g.TotalSaving.Cents != 500 || g.TotalExpense.Cents != 2000 {
		t.Fatalf("unexpected totals: %+v", g)
	}
}

func TestAggregateByCategoryZeroSide(t *testing.T) {
	got := AggregateByCategory([]Transaction{tx("Casa", KindExpense, 1250)})
	if len(got) != 1 {
		t.Fatalf("expected one group, got %d", len(got))
	}
	if got[0].TotalSaving.Cents != 0 {
		t.Fatalf("saving side should report zero, got %d", got[0].TotalSaving.Cents)
	}
}

func TestAggregateByCategoryFirstSeenOrder(t *testing.T) {
	got := AggregateByCategory([]Transaction{
		tx("B", KindExpense, 100),
		tx("A", KindSaving, 200),
		tx("B", KindSaving, 300),
	})
	if len(got) != 2 || got[0].Category != "B" || got[1].Category != "A" {
		t.Fatalf("expected first-seen order [B A], got %+v", got)
	}
}

func TestAggregateByCategoryCaseSensitive(t *testing.T) {
	got := AggregateByCategory([]Transaction{
		tx("ocio", KindExpense, 100),
		tx("Ocio", KindExpense, 100),
	})
	if len(got) != 2 {
		t.Fatalf("category match must be case-sensitive, got %+v", got)
	}
}

func TestAggregateByCategoryConservesTotal(t *testing.T) {
	txs := []Transaction{
		tx("A", KindSaving, 100),
		tx("B", KindExpense, 250),
		tx("A", KindExpense, 50),
		tx("C", KindSaving, 999),
	}
	var want int64
	for _, t := range txs {
		want += t.Amount.Cents
	}
	var got int64
	for _, g := range AggregateByCategory(txs) {
		got += g.TotalSaving.Cents + g.TotalExpense.Cents
	}
	if got != want {
		t.Fatalf("totals not conserved: got %d, want %d", got, want)
	}
}
