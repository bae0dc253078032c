package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"budgetbuddy/internal/core"
)

type createTransactionRequest struct {
	UserID      string `json:"user_id"`
	Kind        string `json:"kind"`
	OccurredAt  string `json:"occurred_at"`
	Title       string `json:"title"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type transactionResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	OccurredAt  string `json:"occurred_at"`
	Title       string `json:"title"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Kind:        string(t.Kind),
		OccurredAt:  t.OccurredAt.Format(time.RFC3339),
		Title:       t.Title,
		AmountCents: t.Amount.Cents,
		Amount:      t.Amount.FormatEuros(),
		Description: t.Description,
		Category:    t.Category,
	}
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodDelete:
		s.handleDeleteTransaction(w, r)
	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind, err := core.ParseKind(req.Kind)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid kind")
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	occurredAt, err := parseDate(req.OccurredAt)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid occurred_at, want YYYY-MM-DD")
		return
	}

	t := core.Transaction{
		UserID:      strings.TrimSpace(req.UserID),
		Kind:        kind,
		OccurredAt:  occurredAt,
		Title:       strings.TrimSpace(req.Title),
		Amount:      amount,
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
	}

	id, err := s.transactions.CreateTransaction(r.Context(), t)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create transaction",
			"user_id", t.UserID, "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	t.ID = id
	writeJSON(w, http.StatusCreated, toTransactionResponse(t))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var (
		txs []core.Transaction
		err error
	)
	if kindParam := strings.TrimSpace(r.URL.Query().Get("kind")); kindParam != "" {
		var kind core.Kind
		kind, err = core.ParseKind(kindParam)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid kind")
			return
		}
		txs, err = s.transactions.ListTransactionsByKind(r.Context(), userID, kind)
	} else {
		txs, err = s.transactions.ListTransactions(r.Context(), userID)
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions",
			"user_id", userID, "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.transactions.DeleteTransaction(r.Context(), userID, id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete transaction",
			"user_id", userID, "id", id, "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
