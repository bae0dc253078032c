// Package assistant contains the financial-context summarizer and the
// chat orchestration against a remote completion endpoint.
package assistant

import (
	"strings"

	"budgetbuddy/internal/core"
)

const (
	// maxRecentTransactions bounds the snapshot's transaction block to
	// the chronological tail of the input.
	maxRecentTransactions = 10

	// maxFieldRunes bounds free-text fields so a single long title
	// cannot blow up the prompt.
	maxFieldRunes = 80
)

// Summarize renders a deterministic plain-text snapshot of a user's
// finances for inclusion in a chat prompt. It is a pure function: goals
// appear one line each in input order, transactions are limited to the
// last maxRecentTransactions in input order (callers sort by date if
// recency matters).
func Summarize(p core.Profile, txs []core.Transaction, cats []core.Category, goals []core.Goal) string {
	var b strings.Builder

	b.WriteString("Usuario: " + p.DisplayName + "\n")
	b.WriteString("Correo: " + p.Email + "\n")
	b.WriteString("Dinero disponible: " + p.TotalFunds.FormatEuros() + " €\n")

	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	b.WriteString("Categorías: " + strings.Join(names, ", ") + "\n")

	b.WriteString("Metas:\n")
	for _, g := range goals {
		b.WriteString("- " + string(g.Kind) + " " + g.Category + " " +
			g.Target.FormatEuros() + "€ hasta " + g.Deadline.Format("02/01/2006") +
			" (estado: " + string(g.Status) + ")\n")
	}

	b.WriteString("Transacciones recientes:\n")
	recent := txs
	if len(recent) > maxRecentTransactions {
		recent = recent[len(recent)-maxRecentTransactions:]
	}
	for _, t := range recent {
		b.WriteString("- " + truncate(t.Title, maxFieldRunes) + ": " +
			t.Amount.FormatEuros() + "€ en " + t.Category +
			" (" + string(t.Kind) + ")\n")
	}

	return b.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
