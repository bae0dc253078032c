package assistant

import (
	"strings"
	"testing"
	"time"

	"budgetbuddy/internal/core"
)

func sampleProfile() core.Profile {
	return core.Profile{
		UserID:      "u1",
		DisplayName: "Eva García",
		Email:       "eva@example.com",
		TotalFunds:  core.Money{Cents: 123450},
	}
}

func TestSummarizeLayout(t *testing.T) {
	deadline := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	got := Summarize(
		sampleProfile(),
		[]core.Transaction{
			{Title: "cena", Amount: core.Money{Cents: 2550}, Category: "Ocio", Kind: core.KindExpense},
		},
		[]core.Category{{Name: "Ocio"}, {Name: "Comida"}},
		[]core.Goal{
			{Kind: core.KindSaving, Category: "Comida", Target: core.Money{Cents: 10000}, Deadline: deadline, Status: core.StatusInProgress},
		},
	)

	want := "Usuario: Eva García\n" +
		"Correo: eva@example.com\n" +
		"Dinero disponible: 1234.50 €\n" +
		"Categorías: Ocio, Comida\n" +
		"Metas:\n" +
		"- Ahorro Comida 100.00€ hasta 15/07/2025 (estado: Proceso)\n" +
		"Transacciones recientes:\n" +
		"- cena: 25.50€ en Ocio (Gasto)\n"
	if got != want {
		t.Fatalf("snapshot mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSummarizeIsDeterministic(t *testing.T) {
	p := sampleProfile()
	a := Summarize(p, nil, nil, nil)
	b := Summarize(p, nil, nil, nil)
	if a != b {
		t.Fatal("summaries of identical input differ")
	}
}

func TestSummarizeLimitsTransactionsToLastTen(t *testing.T) {
	var txs []core.Transaction
	for i := 0; i < 12; i++ {
		txs = append(txs, core.Transaction{
			Title:    "tx" + string(rune('a'+i)),
			Amount:   core.Money{Cents: int64(100 * (i + 1))},
			Category: "C",
			Kind:     core.KindSaving,
		})
	}
	got := Summarize(sampleProfile(), txs, nil, nil)

	if strings.Contains(got, "txa:") || strings.Contains(got, "txb:") {
		t.Fatal("oldest transactions should be dropped")
	}
	lines := 0
	for _, l := range strings.Split(got, "\n") {
		if strings.HasPrefix(l, "- tx") {
			lines++
		}
	}
	if lines != 10 {
		t.Fatalf("expected 10 transaction lines, got %d", lines)
	}
}

func TestSummarizeOneLinePerGoal(t *testing.T) {
	deadline := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	goals := []core.Goal{
		{Kind: core.KindSaving, Category: "A", Target: core.Money{Cents: 100}, Deadline: deadline, Status: core.StatusInProgress},
		{Kind: core.KindExpense, Category: "B", Target: core.Money{Cents: 200}, Deadline: deadline, Status: core.StatusCompleted},
		{Kind: core.KindSaving, Category: "C", Target: core.Money{Cents: 300}, Deadline: deadline, Status: core.StatusExpired},
	}
	got := Summarize(sampleProfile(), nil, nil, goals)

	idx := strings.Index(got, "Metas:\n")
	end := strings.Index(got, "Transacciones recientes:\n")
	block := got[idx+len("Metas:\n") : end]
	goalLines := strings.Count(block, "- ")
	if goalLines != len(goals) {
		t.Fatalf("expected %d goal lines, got %d:\n%s", len(goals), goalLines, block)
	}
	// Input order preserved.
	if !(strings.Index(block, " A ") < strings.Index(block, " B ") &&
		strings.Index(block, " B ") < strings.Index(block, " C ")) {
		t.Fatalf("goal lines out of input order:\n%s", block)
	}
}

func TestSummarizeTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := Summarize(sampleProfile(), []core.Transaction{
		{Title: long, Amount: core.Money{Cents: 100}, Category: "C", Kind: core.KindSaving},
	}, nil, nil)
	if strings.Contains(got, long) {
		t.Fatal("long title should be truncated")
	}
	if !strings.Contains(got, strings.Repeat("x", maxFieldRunes)+"…") {
		t.Fatal("expected truncation marker")
	}
}
