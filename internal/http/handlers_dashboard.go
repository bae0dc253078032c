package http

import (
	"log/slog"
	"net/http"

	"budgetbuddy/internal/core"
)

type categoryTotalsResponse struct {
	Category          string `json:"category"`
	TotalSavingCents  int64  `json:"total_saving_cents"`
	TotalSaving       string `json:"total_saving"`
	TotalExpenseCents int64  `json:"total_expense_cents"`
	TotalExpense      string `json:"total_expense"`
}

type dashboardResponse struct {
	Categories []categoryTotalsResponse `json:"categories"`
}

// handleDashboard returns per-category saving and expense totals over
// the user's full transaction history.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	txs, err := s.transactions.ListTransactions(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load transactions for dashboard",
			"user_id", userID, "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	totals := core.AggregateByCategory(txs)
	out := dashboardResponse{Categories: make([]categoryTotalsResponse, 0, len(totals))}
	for _, ct := range totals {
		out.Categories = append(out.Categories, categoryTotalsResponse{
			Category:          ct.Category,
			TotalSavingCents:  ct.TotalSaving.Cents,
			TotalSaving:       ct.TotalSaving.FormatEuros(),
			TotalExpenseCents: ct.TotalExpense.Cents,
			TotalExpense:      ct.TotalExpense.FormatEuros(),
		})
	}

	writeJSON(w, http.StatusOK, out)
}
